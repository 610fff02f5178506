package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "DB_DRIVER", "SESSION_TTL_HOURS", "ADMIN_EMAILS", "SESSION_STORE")

	cfg := Load()

	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 168*time.Hour, cfg.Session.TTL)
	assert.Empty(t, cfg.Auth.AdminEmails)
}

func TestSessionStoreFollowsDriver(t *testing.T) {
	unsetEnv(t, "SESSION_STORE")
	t.Setenv("DB_DRIVER", "postgres")

	assert.Equal(t, "database", Load().Session.Store)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("SESSION_SWEEP_MINUTES", "5")
	t.Setenv("ADMIN_EMAILS", " admin@example.com, ,ops@example.com ")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 5*time.Minute, cfg.Session.SweepInterval)
	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, cfg.Auth.AdminEmails)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestUnmatchableAdminEmails(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "admin@x.com,Ops@X.com")

	cfg := Load()

	assert.Equal(t, []string{"admin@x.com", "Ops@X.com"}, cfg.Auth.AdminEmails)
	assert.Equal(t, []string{"Ops@X.com"}, cfg.Auth.UnmatchableAdminEmails())
	assert.Empty(t, AuthConfig{AdminEmails: []string{"a@x.com"}}.UnmatchableAdminEmails())
}
