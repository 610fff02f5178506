package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestManager(ttl time.Duration) (*Manager, *fakeClock) {
	clock := &fakeClock{now: time.Now().UTC().Truncate(time.Microsecond)}
	repo := memory.NewSessionRepository(time.Minute)
	return NewManager(repo, ttl, logger.NewNop(), WithClock(clock.Now)), clock
}

func TestCreateAndResolve(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(time.Hour)
	userId := uuid.New()

	token, s, err := m.CreateSession(ctx, userId)
	require.NoError(t, err)
	assert.Len(t, token, 43)
	assert.NotEqual(t, token, s.TokenHash)
	assert.Equal(t, time.Hour, s.ExpiresAt.Sub(s.CreatedAt))

	got, ok, err := m.ResolveSession(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, userId, got)
}

func TestTokensAreUnique(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, _, err := m.CreateSession(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestResolveExpiresAtBoundary(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestManager(DefaultTTL)
	userId := uuid.New()
	token, _, err := m.CreateSession(ctx, userId)
	require.NoError(t, err)

	clock.Advance(DefaultTTL - time.Nanosecond)
	got, ok, err := m.ResolveSession(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, userId, got)

	clock.Advance(time.Nanosecond)
	_, ok, err = m.ResolveSession(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok, "a session is absent at exactly expiresAt")

	// lazily removed
	stored, err := m.repo.FindByTokenHash(ctx, HashToken(token))
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestAbsentTokensLookAlike(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestManager(time.Hour)
	expired, _, err := m.CreateSession(ctx, uuid.New())
	require.NoError(t, err)
	clock.Advance(2 * time.Hour)

	for _, token := range []string{"", "never-issued", expired} {
		id, ok, err := m.ResolveSession(ctx, token)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, uuid.Nil, id)
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(time.Hour)
	token, _, err := m.CreateSession(ctx, uuid.New())
	require.NoError(t, err)

	require.NoError(t, m.DestroySession(ctx, token))
	require.NoError(t, m.DestroySession(ctx, token))
	require.NoError(t, m.DestroySession(ctx, ""))

	_, ok, err := m.ResolveSession(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionsAreIndependentPerDevice(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(time.Hour)
	userId := uuid.New()
	phone, _, err := m.CreateSession(ctx, userId)
	require.NoError(t, err)
	laptop, _, err := m.CreateSession(ctx, userId)
	require.NoError(t, err)

	require.NoError(t, m.DestroySession(ctx, phone))
	_, ok, err := m.ResolveSession(ctx, laptop)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestManager(time.Hour)
	_, _, err := m.CreateSession(ctx, uuid.New())
	require.NoError(t, err)

	n, err := m.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	clock.Advance(time.Hour)
	n, err = m.Sweep(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestStartSweeperStopsWithContext(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.StartSweeper(ctx, time.Millisecond)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

type failingRepo struct{}

func (failingRepo) Create(context.Context, *entity.Session) error { return errors.New("down") }
func (failingRepo) FindByTokenHash(context.Context, string) (*entity.Session, error) {
	return nil, errors.New("down")
}
func (failingRepo) DeleteByTokenHash(context.Context, string) error { return errors.New("down") }
func (failingRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, errors.New("down")
}

func TestStoreFailuresAreErrors(t *testing.T) {
	ctx := context.Background()
	m := NewManager(failingRepo{}, 0, logger.NewNop())
	assert.Equal(t, DefaultTTL, m.TTL())

	_, _, err := m.CreateSession(ctx, uuid.New())
	assert.Error(t, err)

	_, ok, err := m.ResolveSession(ctx, "token")
	assert.Error(t, err)
	assert.False(t, ok)

	assert.Error(t, m.DestroySession(ctx, "token"))
}
