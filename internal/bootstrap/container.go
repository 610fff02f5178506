package bootstrap

import (
	"context"
	"fmt"
	"time"

	"ai-tutor-be/internal/config"
	"ai-tutor-be/internal/controller"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/pkg/mailer"
	"ai-tutor-be/internal/pkg/serverutils"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/implementation"
	"ai-tutor-be/internal/repository/memory"
	"ai-tutor-be/internal/repository/redisstore"
	"ai-tutor-be/internal/repository/unitofwork"
	"ai-tutor-be/internal/service"
	"ai-tutor-be/pkg/admin/dashboard"
	"ai-tutor-be/pkg/auth/access"
	"ai-tutor-be/pkg/auth/password"
	"ai-tutor-be/pkg/auth/session"
	"ai-tutor-be/pkg/llm"
	"ai-tutor-be/pkg/llm/factory"
	pktNats "ai-tutor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const (
	SessionStoreMemory   = "memory"
	SessionStoreDatabase = "database"
	SessionStoreRedis    = "redis"
)

type Container struct {
	// Controllers
	HealthController controller.IHealthController
	AuthController   controller.IAuthController
	UserController   controller.IUserController
	ChatController   controller.IChatController
	TutorController  controller.ITutorController
	AdminController  controller.IAdminController

	// Access control, used by the server to build middleware
	Gate     *access.Gate
	Sessions *session.Manager

	// Background services (run by main.go)
	AuditService service.IAuditService

	// Exposed for cmd/seed
	UowFactory unitofwork.RepositoryFactory
	Hasher     password.Hasher

	Logger logger.ILogger

	closers []func()
}

type Option func(*options)

type options struct {
	llmProvider  llm.LLMProvider
	emailService mailer.IEmailService
	auditLogger  logger.ILogger
}

func WithLLMProvider(p llm.LLMProvider) Option {
	return func(o *options) { o.llmProvider = p }
}

func WithEmailService(m mailer.IEmailService) Option {
	return func(o *options) { o.emailService = m }
}

func WithAuditLogger(l logger.ILogger) Option {
	return func(o *options) { o.auditLogger = l }
}

// NewContainer wires every component. A nil db selects the in-memory store.
func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger, opts ...Option) (*Container, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	c := &Container{Logger: sysLogger}

	// 1. Core Facades
	var uowFactory unitofwork.RepositoryFactory
	if db == nil {
		uowFactory = memory.NewRepositoryFactory(memory.NewStore())
		sysLogger.Warn("BOOTSTRAP", "Using in-memory store, data is lost on restart", nil)
	} else {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	}
	c.UowFactory = uowFactory

	sessionRepo, err := c.sessionRepository(db, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	sessions := session.NewManager(sessionRepo, cfg.Session.TTL, sysLogger)
	roles := access.NewAllowList(cfg.Auth.AdminEmails)
	gate := access.NewGate(sessions, uowFactory, roles)
	hasher := password.NewBcryptHasher(cfg.Auth.BcryptCost)
	c.Gate, c.Sessions, c.Hasher = gate, sessions, hasher

	emailService := o.emailService
	if emailService == nil {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
			sysLogger,
		)
	}

	llmProvider := o.llmProvider
	if llmProvider == nil {
		llmProvider, err = factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.OllamaBaseURL, cfg.Ai.Timeout)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("init LLM provider: %w", err)
		}
	}
	sysLogger.Info("BOOTSTRAP", "LLM provider ready", map[string]interface{}{
		"provider": llmProvider.Name(),
		"model":    cfg.Ai.LLMModel,
	})

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(context.Background(), cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "NATS unavailable, events stay in-process", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}
	eventPublisher := service.NewEventPublisher(pubSub, forwarder, sysLogger)

	auditLogger := o.auditLogger
	if auditLogger == nil {
		auditLogger = logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	}
	c.AuditService = service.NewAuditService(pubSub, auditLogger)

	// 3. Services
	authService := service.NewAuthService(uowFactory, sessions, hasher, roles, emailService, eventPublisher, sysLogger)
	userService := service.NewUserService(uowFactory, hasher, roles, sysLogger)
	chatService := service.NewChatService(uowFactory, gate, eventPublisher, sysLogger)
	tutorService := service.NewTutorService(chatService, llmProvider, cfg.Ai.Timeout, cfg.App.UploadDir, sysLogger)
	adminService := service.NewAdminService(uowFactory, dashboard.NewAggregator(sysLogger))

	// 4. Controllers
	cookie := serverutils.CookieConfig{Secure: cfg.IsProduction(), TTL: sessions.TTL()}
	c.HealthController = controller.NewHealthController()
	c.AuthController = controller.NewAuthController(authService, cookie)
	c.UserController = controller.NewUserController(userService)
	c.ChatController = controller.NewChatController(chatService)
	c.TutorController = controller.NewTutorController(tutorService)
	c.AdminController = controller.NewAdminController(adminService)

	return c, nil
}

func (c *Container) sessionRepository(db *gorm.DB, cfg *config.Config) (contract.SessionRepository, error) {
	switch cfg.Session.Store {
	case SessionStoreMemory:
		return memory.NewSessionRepository(time.Minute), nil
	case SessionStoreDatabase:
		if db == nil {
			return nil, fmt.Errorf("SESSION_STORE=database needs a relational DB_DRIVER")
		}
		return implementation.NewSessionRepository(db), nil
	case SessionStoreRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rdb, err := redisstore.Connect(ctx, cfg.App.RedisURL)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		return redisstore.NewSessionRepository(rdb), nil
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}
}

// Close releases broker and cache connections in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
