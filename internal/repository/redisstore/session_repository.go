package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "tutor:session:"

type sessionRecord struct {
	UserId    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionRepository keeps one key per session with a TTL equal to the
// session lifetime, so redis evicts expired sessions on its own.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) contract.SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) Create(ctx context.Context, session *entity.Session) error {
	ttl := session.ExpiresAt.Sub(session.CreatedAt)
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(sessionRecord{
		UserId:    session.UserId,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+session.TokenHash, payload, ttl).Err()
}

func (r *SessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	payload, err := r.client.Get(ctx, keyPrefix+tokenHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec sessionRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &entity.Session{
		TokenHash: tokenHash,
		UserId:    rec.UserId,
		ExpiresAt: rec.ExpiresAt,
		CreatedAt: rec.CreatedAt,
	}, nil
}

func (r *SessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return r.client.Del(ctx, keyPrefix+tokenHash).Err()
}

// DeleteExpired walks the session keys with SCAN. Keys normally vanish through
// their TTL; this catches sessions whose expiry is judged by a different clock.
func (r *SessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		s, err := r.FindByTokenHash(ctx, key[len(keyPrefix):])
		if err != nil {
			return deleted, err
		}
		if s == nil || s.ExpiresAt.After(before) {
			continue
		}
		n, err := r.client.Del(ctx, key).Result()
		if err != nil {
			return deleted, err
		}
		deleted += n
	}
	return deleted, iter.Err()
}
