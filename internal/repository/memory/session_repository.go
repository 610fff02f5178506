package memory

import (
	"context"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps sessions in process memory. Each item carries
// its own TTL; the janitor purges evicted items every cleanupInterval.
func NewSessionRepository(cleanupInterval time.Duration) contract.SessionRepository {
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *entity.Session) error {
	ttl := session.ExpiresAt.Sub(session.CreatedAt)
	if ttl <= 0 {
		return nil
	}
	stored := *session
	r.cache.Set(session.TokenHash, &stored, ttl)
	return nil
}

func (r *SessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	if x, found := r.cache.Get(tokenHash); found {
		s := *x.(*entity.Session)
		return &s, nil
	}
	return nil, nil
}

func (r *SessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	r.cache.Delete(tokenHash)
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	for key, item := range r.cache.Items() {
		if s, ok := item.Object.(*entity.Session); ok && !s.ExpiresAt.After(before) {
			r.cache.Delete(key)
			deleted++
		}
	}
	return deleted, nil
}
