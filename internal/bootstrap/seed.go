package bootstrap

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"ai-tutor-be/internal/config"
	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/specification"
	"ai-tutor-be/internal/repository/unitofwork"
	"ai-tutor-be/pkg/auth/password"

	"github.com/google/uuid"
)

const (
	DemoEmail = "demo@example.com"

	devDemoPassword  = "demo1234"
	devAdminPassword = "admin1234"
)

type SeedAccount struct {
	FullName string
	Email    string
	Password string
}

// DefaultSeedAccounts is the demo user plus an admin for the first
// ADMIN_EMAILS entry, if any. An account without a usable password is left
// out in production.
func DefaultSeedAccounts(cfg *config.Config, log logger.ILogger) []SeedAccount {
	var accounts []SeedAccount
	if pw, ok := seedPassword(cfg, cfg.Auth.DemoPassword, devDemoPassword, "DEMO_PASSWORD", log); ok {
		accounts = append(accounts, SeedAccount{FullName: "Demo Student", Email: DemoEmail, Password: pw})
	}
	if len(cfg.Auth.AdminEmails) > 0 {
		email := cfg.Auth.AdminEmails[0]
		if email != strings.ToLower(email) {
			log.Warn("BOOTSTRAP", "Admin seed skipped, ADMIN_EMAILS entry is not lowercase", map[string]interface{}{"email": email})
			return accounts
		}
		if pw, ok := seedPassword(cfg, cfg.Auth.SeedAdminPassword, devAdminPassword, "SEED_ADMIN_PASSWORD", log); ok {
			accounts = append(accounts, SeedAccount{
				FullName: "Administrator",
				Email:    email,
				Password: pw,
			})
		}
	}
	return accounts
}

func seedPassword(cfg *config.Config, configured, devDefault, envKey string, log logger.ILogger) (string, bool) {
	if configured == "" {
		if cfg.IsProduction() {
			log.Warn("BOOTSTRAP", "Seed account skipped, password not set", map[string]interface{}{"env": envKey})
			return "", false
		}
		return devDefault, true
	}
	if utf8.RuneCountInString(configured) < password.MinLength || len(configured) > password.MaxBytes {
		log.Warn("BOOTSTRAP", "Seed account skipped, password length out of range", map[string]interface{}{"env": envKey})
		return "", false
	}
	return configured, true
}

// SeedAccounts creates the given accounts, skipping emails that already exist.
// It returns how many were created.
func SeedAccounts(ctx context.Context, uowFactory unitofwork.RepositoryFactory, hasher password.Hasher, accounts []SeedAccount, log logger.ILogger) (int, error) {
	created := 0
	for _, acc := range accounts {
		email := strings.ToLower(strings.TrimSpace(acc.Email))
		repo := uowFactory.NewUnitOfWork(ctx).UserRepository()

		existing, err := repo.FindOne(ctx, specification.ByEmail{Email: email})
		if err != nil {
			return created, err
		}
		if existing != nil {
			log.Info("BOOTSTRAP", "Seed account exists, skipping", map[string]interface{}{"email": email})
			continue
		}

		hash, err := hasher.Hash(acc.Password)
		if err != nil {
			return created, err
		}
		now := time.Now().UTC().Truncate(time.Microsecond)
		user := &entity.User{
			Id:           uuid.New(),
			FullName:     acc.FullName,
			Email:        email,
			PasswordHash: hash,
			Preferences:  entity.DefaultPreferences(),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := repo.Create(ctx, user); err != nil {
			if errors.Is(err, contract.ErrDuplicateEmail) {
				continue
			}
			return created, err
		}
		created++
		log.Info("BOOTSTRAP", "Seed account created", map[string]interface{}{"email": email})
	}
	return created, nil
}
