package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"ai-tutor-be/internal/config"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/memory"
	"ai-tutor-be/internal/repository/specification"
	"ai-tutor-be/pkg/auth/password"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

func baseConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		App: config.AppConfig{
			AuditLogFilePath: filepath.Join(dir, "audit.log"),
			UploadDir:        dir,
		},
		Database: config.DatabaseConfig{Driver: "memory"},
		Session:  config.SessionConfig{Store: SessionStoreMemory, TTL: time.Hour},
		Auth: config.AuthConfig{
			AdminEmails:       []string{"admin@x.com"},
			BcryptCost:        bcrypt.MinCost,
			DemoPassword:      "demo1234",
			SeedAdminPassword: "admin1234",
		},
		Ai: config.AIConfig{LLMProvider: "mock", Timeout: time.Second},
	}
}

func TestNewContainerInMemory(t *testing.T) {
	c, err := NewContainer(nil, baseConfig(t), logger.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.Gate)
	assert.NotNil(t, c.AuditService)
	assert.NotNil(t, c.ChatController)
	assert.Equal(t, time.Hour, c.Sessions.TTL())
}

func TestNewContainerSessionStores(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Session.Store = SessionStoreDatabase
	_, err := NewContainer(nil, cfg, logger.NewNop())
	assert.Error(t, err, "database sessions need a relational store")

	cfg.Session.Store = "etcd"
	_, err = NewContainer(nil, cfg, logger.NewNop())
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	cfg.Session.Store = SessionStoreRedis
	cfg.App.RedisURL = mr.Addr()
	c, err := NewContainer(nil, cfg, logger.NewNop())
	require.NoError(t, err)
	c.Close()
}

func TestNewContainerRejectsUnknownLLM(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Ai.LLMProvider = "gpt-telepathy"
	_, err := NewContainer(nil, cfg, logger.NewNop())
	assert.Error(t, err)
}

func TestOpenDatabase(t *testing.T) {
	cfg := baseConfig(t)
	db, err := OpenDatabase(cfg)
	require.NoError(t, err)
	assert.Nil(t, db)

	cfg.Database.Driver = "sqlite"
	cfg.Database.SQLitePath = "file:bootstrap_test?mode=memory&cache=shared"
	db, err = OpenDatabase(cfg)
	require.NoError(t, err)
	assert.NotNil(t, db)

	cfg.Database.Driver = "oracle"
	_, err = OpenDatabase(cfg)
	assert.Error(t, err)
}

func TestSeedAccountsSkipsExisting(t *testing.T) {
	ctx := context.Background()
	cfg := baseConfig(t)
	factory := memory.NewRepositoryFactory(memory.NewStore())
	hasher := password.NewBcryptHasher(bcrypt.MinCost)

	accounts := DefaultSeedAccounts(cfg, logger.NewNop())
	require.Len(t, accounts, 2)

	n, err := SeedAccounts(ctx, factory, hasher, accounts, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = SeedAccounts(ctx, factory, hasher, accounts, logger.NewNop())
	require.NoError(t, err)
	assert.Zero(t, n)

	demo, err := factory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByEmail{Email: DemoEmail})
	require.NoError(t, err)
	require.NotNil(t, demo)
	assert.True(t, hasher.Compare(demo.PasswordHash, "demo1234"))
}

func TestDefaultSeedAccountsDevelopmentFallback(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Auth.DemoPassword = ""
	cfg.Auth.SeedAdminPassword = ""

	accounts := DefaultSeedAccounts(cfg, logger.NewNop())
	require.Len(t, accounts, 2)
	assert.Equal(t, devDemoPassword, accounts[0].Password)
	assert.Equal(t, "admin@x.com", accounts[1].Email)
	assert.Equal(t, devAdminPassword, accounts[1].Password)
}

func TestDefaultSeedAccountsInProduction(t *testing.T) {
	cfg := baseConfig(t)
	cfg.App.Environment = "production"
	cfg.Auth.DemoPassword = ""
	cfg.Auth.SeedAdminPassword = ""
	core, logs := observer.New(zapcore.WarnLevel)
	log := logger.New(zap.New(core))

	assert.Empty(t, DefaultSeedAccounts(cfg, log))
	assert.Equal(t, 2, logs.FilterMessage("Seed account skipped, password not set").Len())

	cfg.Auth.SeedAdminPassword = "short"
	assert.Empty(t, DefaultSeedAccounts(cfg, log))

	cfg.Auth.SeedAdminPassword = "Str0ng-and-private"
	accounts := DefaultSeedAccounts(cfg, log)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Administrator", accounts[0].FullName)
	assert.Equal(t, "Str0ng-and-private", accounts[0].Password)
}

func TestDefaultSeedAccountsSkipsMixedCaseAdmin(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Auth.AdminEmails = []string{"Admin@X.com"}
	core, logs := observer.New(zapcore.WarnLevel)

	accounts := DefaultSeedAccounts(cfg, logger.New(zap.New(core)))
	require.Len(t, accounts, 1)
	assert.Equal(t, DemoEmail, accounts[0].Email)
	assert.Equal(t, 1, logs.Len())
}
