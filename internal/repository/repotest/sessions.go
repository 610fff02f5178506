package repotest

import (
	"context"
	"testing"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessions checks a SessionRepository. newRepo returns an empty repository
// and the id of a user that sessions may reference.
func RunSessions(t *testing.T, newRepo func(t *testing.T) (contract.SessionRepository, uuid.UUID)) {
	ctx := context.Background()
	repo, userId := newRepo(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	live := &entity.Session{TokenHash: "live", UserId: userId, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	stale := &entity.Session{TokenHash: "stale", UserId: userId, CreatedAt: now, ExpiresAt: now.Add(time.Minute)}
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, stale))

	got, err := repo.FindByTokenHash(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, userId, got.UserId)
	assert.True(t, live.ExpiresAt.Equal(got.ExpiresAt))

	missing, err := repo.FindByTokenHash(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	n, err := repo.DeleteExpired(ctx, now.Add(30*time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	gone, err := repo.FindByTokenHash(ctx, "stale")
	assert.NoError(t, err)
	assert.Nil(t, gone)

	require.NoError(t, repo.DeleteByTokenHash(ctx, "live"))
	require.NoError(t, repo.DeleteByTokenHash(ctx, "live"))
	gone, err = repo.FindByTokenHash(ctx, "live")
	assert.NoError(t, err)
	assert.Nil(t, gone)
}
