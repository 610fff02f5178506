package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/contract"

	"github.com/google/uuid"
)

const (
	CookieName = "session"
	DefaultTTL = 7 * 24 * time.Hour

	tokenBytes = 32
)

// Manager issues, resolves and revokes opaque session tokens. The token itself
// is handed to the client once; only its SHA-256 hash is stored.
type Manager struct {
	repo   contract.SessionRepository
	ttl    time.Duration
	now    func() time.Time
	logger logger.ILogger
}

type Option func(*Manager)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(repo contract.SessionRepository, ttl time.Duration, log logger.ILogger, opts ...Option) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{
		repo:   repo,
		ttl:    ttl,
		now:    time.Now,
		logger: log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// CreateSession stores a new session for userId and returns the raw token.
func (m *Manager) CreateSession(ctx context.Context, userId uuid.UUID) (string, *entity.Session, error) {
	token, err := newToken()
	if err != nil {
		return "", nil, err
	}

	now := m.now().UTC().Truncate(time.Microsecond)
	s := &entity.Session{
		TokenHash: HashToken(token),
		UserId:    userId,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.repo.Create(ctx, s); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	m.logger.Debug("SESSION", "Session created", map[string]interface{}{
		"user_id":    userId,
		"expires_at": s.ExpiresAt,
	})
	return token, s, nil
}

// ResolveSession returns the bound user while now < expiresAt. A missing,
// unknown and expired token all report ok == false with a nil error. Expired
// rows are deleted on the way out.
func (m *Manager) ResolveSession(ctx context.Context, token string) (uuid.UUID, bool, error) {
	if token == "" {
		return uuid.Nil, false, nil
	}

	s, err := m.repo.FindByTokenHash(ctx, HashToken(token))
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("load session: %w", err)
	}
	if s == nil {
		return uuid.Nil, false, nil
	}

	if s.IsExpired(m.now()) {
		if err := m.repo.DeleteByTokenHash(ctx, s.TokenHash); err != nil {
			m.logger.Warn("SESSION", "Failed to delete expired session", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return uuid.Nil, false, nil
	}

	return s.UserId, true, nil
}

// DestroySession is idempotent.
func (m *Manager) DestroySession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.repo.DeleteByTokenHash(ctx, HashToken(token)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Sweep removes every session that has expired by now.
func (m *Manager) Sweep(ctx context.Context) (int64, error) {
	return m.repo.DeleteExpired(ctx, m.now())
}

// StartSweeper runs Sweep every interval until ctx is done. It blocks; run it
// in its own goroutine. A non-positive interval disables it.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.Sweep(ctx)
			if err != nil {
				m.logger.Error("SESSION", "Session sweep failed", map[string]interface{}{"error": err})
				continue
			}
			if n > 0 {
				m.logger.Info("SESSION", "Expired sessions removed", map[string]interface{}{"count": n})
			}
		}
	}
}

// HashToken is the storage key for a raw token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
