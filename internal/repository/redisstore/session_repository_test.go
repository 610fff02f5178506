package redisstore

import (
	"context"
	"testing"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/repotest"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *SessionRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return mr, &SessionRepository{client: client}
}

func TestRedisSessionRepository(t *testing.T) {
	repotest.RunSessions(t, func(t *testing.T) (contract.SessionRepository, uuid.UUID) {
		_, repo := newTestClient(t)
		return repo, uuid.New()
	})
}

func TestRedisSessionKeyExpires(t *testing.T) {
	mr, repo := newTestClient(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, &entity.Session{
		TokenHash: "abc",
		UserId:    uuid.New(),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}))
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"abc"))

	mr.FastForward(time.Hour)
	got, err := repo.FindByTokenHash(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConnectAcceptsURL(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	client.Close()

	_, err = Connect(context.Background(), "redis://%zz")
	assert.Error(t, err)
}
