package service

import (
	"context"
	"testing"
	"time"

	"ai-tutor-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	asOf := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	f.admin.now = func() time.Time { return asOf }

	alice, _ := f.signup(t, "Alice", "alice@x.com")
	f.signup(t, "Bob", "bob@x.com")
	_, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	chat, err := f.chats.CreateChat(ctx, alice, &dto.CreateChatRequest{Title: "Algebra"})
	require.NoError(t, err)
	appendMsg(t, f, alice, chat.Id, "user", "x + 2 = 5?")
	appendMsg(t, f, alice, chat.Id, "assistant", "x = 3")

	stats, err := f.admin.GetStats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.AsOf.Equal(asOf))
	assert.EqualValues(t, 2, stats.Users.Total)
	assert.EqualValues(t, 2, stats.Users.Today)
	assert.EqualValues(t, 1, stats.Users.Active)
	assert.EqualValues(t, 1, stats.Chats.Total)
	assert.EqualValues(t, 2, stats.Messages.Total)
	assert.Equal(t, 0.5, stats.AvgChatsPerUser)
	assert.Equal(t, 2.0, stats.AvgMessagesPerChat)
}

func TestGetStatsEmpty(t *testing.T) {
	f := newFixture(t)

	stats, err := f.admin.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Users.Total)
	assert.Zero(t, stats.AvgChatsPerUser)
	assert.Zero(t, stats.AvgMessagesPerChat)
}
