package contract

import (
	"context"
	"time"

	"ai-tutor-be/internal/entity"
)

// SessionRepository stores sessions keyed by token hash. It lives outside the
// unit of work so that every backend (sql, go-cache, redis) can serve it.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// FindByTokenHash returns (nil, nil) for an unknown hash.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)
	// DeleteByTokenHash is a no-op for an unknown hash.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
