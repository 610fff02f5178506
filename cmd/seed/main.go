package main

import (
	"context"
	"log"

	"ai-tutor-be/internal/bootstrap"
	"ai-tutor-be/internal/config"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/unitofwork"
	"ai-tutor-be/pkg/auth/password"
	"ai-tutor-be/pkg/database"
)

func main() {
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	db, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if db == nil {
		log.Fatal("Error: DB_DRIVER=memory does not persist; set SEED_DEMO_ACCOUNTS=true on the server instead")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}

	accounts := bootstrap.DefaultSeedAccounts(cfg, sysLogger)
	created, err := bootstrap.SeedAccounts(
		context.Background(),
		unitofwork.NewRepositoryFactory(db),
		password.NewBcryptHasher(cfg.Auth.BcryptCost),
		accounts,
		sysLogger,
	)
	if err != nil {
		log.Fatal("Error: Seeding failed:", err)
	}
	log.Printf("Seeding completed: %d of %d accounts created", created, len(accounts))
}
