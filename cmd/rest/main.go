package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"ai-tutor-be/internal/bootstrap"
	"ai-tutor-be/internal/config"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/server"
	"ai-tutor-be/internal/tracer"
	"ai-tutor-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Tracing (OTEL_ENABLED gate)
	shutdownTracer := tracer.InitTracer(sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	db, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		log.Panicf("Unable to open database: %v", err)
	}
	if db != nil && cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Panicf("Auto-migration failed: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(db, cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to build container: %v", err)
	}
	defer container.Close()

	if cfg.Auth.SeedDemoAccounts {
		if _, err := bootstrap.SeedAccounts(ctx, container.UowFactory, container.Hasher, bootstrap.DefaultSeedAccounts(cfg, sysLogger), sysLogger); err != nil {
			sysLogger.Error("BOOTSTRAP", "Seeding failed", map[string]interface{}{"error": err})
		}
	}

	// 5. Start Background Services
	if err := container.AuditService.Consume(ctx); err != nil {
		sysLogger.Error("BOOTSTRAP", "Audit consumer failed to start", map[string]interface{}{"error": err})
	}
	if cfg.Session.SweepInterval > 0 {
		go container.Sessions.StartSweeper(ctx, cfg.Session.SweepInterval)
	}

	// 6. Run Server until a signal arrives
	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			sysLogger.Error("HTTP", "Server stopped", map[string]interface{}{"error": err})
			stop()
		}
	}()

	<-ctx.Done()
	sysLogger.Info("HTTP", "Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sysLogger.Error("HTTP", "Graceful shutdown failed", map[string]interface{}{"error": err})
	}
}
