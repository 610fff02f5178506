// Package repotest holds behaviour checks shared by every repository backend.
package repotest

import (
	"context"
	"testing"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/specification"
	"ai-tutor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// Run exercises a fresh, empty store behind factory.
func Run(t *testing.T, newFactory func(t *testing.T) unitofwork.RepositoryFactory) {
	t.Run("users", func(t *testing.T) { testUsers(t, newFactory(t)) })
	t.Run("chats", func(t *testing.T) { testChats(t, newFactory(t)) })
	t.Run("messages", func(t *testing.T) { testMessages(t, newFactory(t)) })
	t.Run("rollback", func(t *testing.T) { testRollback(t, newFactory(t)) })
}

func NewUser(email string, createdAt time.Time) *entity.User {
	return &entity.User{
		Id:           uuid.New(),
		FullName:     "Test User",
		Email:        email,
		PasswordHash: "hash",
		Preferences:  entity.DefaultPreferences(),
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func NewChat(userId uuid.UUID, title string, at time.Time) *entity.Chat {
	return &entity.Chat{Id: uuid.New(), UserId: userId, Title: title, CreatedAt: at, UpdatedAt: at}
}

func NewMessage(chatId uuid.UUID, role entity.MessageRole, content string, at time.Time) *entity.Message {
	return &entity.Message{Id: uuid.Must(uuid.NewV7()), ChatId: chatId, Role: role, Content: content, CreatedAt: at}
}

func testUsers(t *testing.T, factory unitofwork.RepositoryFactory) {
	ctx := context.Background()
	repo := factory.NewUnitOfWork(ctx).UserRepository()

	alice := NewUser("alice@example.com", base)
	require.NoError(t, repo.Create(ctx, alice))

	err := repo.Create(ctx, NewUser("alice@example.com", base))
	assert.ErrorIs(t, err, contract.ErrDuplicateEmail)

	found, err := repo.FindOne(ctx, specification.ByEmail{Email: " Alice@Example.COM "})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, alice.Id, found.Id)
	assert.Equal(t, entity.DefaultPreferences(), found.Preferences)
	assert.Nil(t, found.LastLoginAt)

	missing, err := repo.FindOne(ctx, specification.ByID{ID: uuid.New()})
	assert.NoError(t, err)
	assert.Nil(t, missing)

	loginAt := base.Add(time.Hour)
	require.NoError(t, repo.UpdateLastLogin(ctx, alice.Id, loginAt))

	found.FullName = "Alice A."
	found.Preferences = entity.Preferences{Language: entity.LanguageBangla, Theme: entity.ThemeDark}
	found.UpdatedAt = loginAt
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.FindOne(ctx, specification.ByID{ID: alice.Id})
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", reloaded.FullName)
	assert.Equal(t, entity.LanguageBangla, reloaded.Preferences.Language)
	require.NotNil(t, reloaded.LastLoginAt)
	assert.True(t, loginAt.Equal(*reloaded.LastLoginAt))

	bob := NewUser("bob@example.com", base.Add(time.Minute))
	require.NoError(t, repo.Create(ctx, bob))
	bob.Email = "alice@example.com"
	assert.ErrorIs(t, repo.Update(ctx, bob), contract.ErrDuplicateEmail)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	recent, err := repo.Count(ctx, specification.CreatedSince{Since: base.Add(time.Second)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, recent)
}

func testChats(t *testing.T, factory unitofwork.RepositoryFactory) {
	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)
	alice := NewUser("alice@example.com", base)
	bob := NewUser("bob@example.com", base)
	require.NoError(t, uow.UserRepository().Create(ctx, alice))
	require.NoError(t, uow.UserRepository().Create(ctx, bob))

	chats := uow.ChatRepository()
	first := NewChat(alice.Id, "first", base)
	second := NewChat(alice.Id, "second", base.Add(time.Minute))
	other := NewChat(bob.Id, "bob's", base)
	for _, c := range []*entity.Chat{first, second, other} {
		require.NoError(t, chats.Create(ctx, c))
	}

	require.NoError(t, chats.Touch(ctx, first.Id, base.Add(time.Hour)))

	owned, err := chats.FindAll(ctx, specification.UserOwnedBy{UserID: alice.Id}, specification.RecentlyUpdated{})
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, first.Id, owned[0].Id)
	assert.Equal(t, second.Id, owned[1].Id)
	assert.Equal(t, alice.Id, owned[0].UserId)

	require.NoError(t, chats.UpdateTitle(ctx, second.Id, "renamed", base.Add(2*time.Hour)))
	got, err := chats.FindOne(ctx, specification.ByID{ID: second.Id})
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.True(t, base.Add(2*time.Hour).Equal(got.UpdatedAt))
	assert.True(t, base.Add(time.Minute).Equal(got.CreatedAt))

	require.NoError(t, chats.Delete(ctx, other.Id))
	gone, err := chats.FindOne(ctx, specification.ByID{ID: other.Id})
	assert.NoError(t, err)
	assert.Nil(t, gone)

	page, err := chats.FindAll(ctx, specification.UserOwnedBy{UserID: alice.Id}, specification.RecentlyUpdated{}, specification.Pagination{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, first.Id, page[0].Id)

	page, err = chats.FindAll(ctx, specification.UserOwnedBy{UserID: alice.Id}, specification.RecentlyUpdated{}, specification.Pagination{Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, first.Id, page[0].Id)
}

func testMessages(t *testing.T, factory unitofwork.RepositoryFactory) {
	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)
	alice := NewUser("alice@example.com", base)
	require.NoError(t, uow.UserRepository().Create(ctx, alice))
	chat := NewChat(alice.Id, "maths", base)
	require.NoError(t, uow.ChatRepository().Create(ctx, chat))

	msgs := uow.MessageRepository()
	var want []uuid.UUID
	// identical timestamps must still come back in insertion order
	for i := 0; i < 5; i++ {
		m := NewMessage(chat.Id, entity.MessageRoleUser, "same instant", base)
		require.NoError(t, msgs.Create(ctx, m))
		want = append(want, m.Id)
	}
	img := "/uploads/graph.png"
	last := NewMessage(chat.Id, entity.MessageRoleAssistant, "later", base.Add(time.Second))
	last.ImageURL = &img
	require.NoError(t, msgs.Create(ctx, last))
	want = append(want, last.Id)

	got, err := msgs.FindAll(ctx, specification.ByChatID{ChatID: chat.Id}, specification.Chronological{})
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i], got[i].Id, "position %d", i)
	}
	require.NotNil(t, got[5].ImageURL)
	assert.Equal(t, img, *got[5].ImageURL)
	assert.Equal(t, entity.MessageRoleAssistant, got[5].Role)

	orphan := NewMessage(uuid.New(), entity.MessageRoleUser, "no chat", base)
	assert.Error(t, msgs.Create(ctx, orphan))

	require.NoError(t, msgs.DeleteByChatID(ctx, chat.Id))
	count, err := msgs.Count(ctx, specification.ByChatID{ChatID: chat.Id})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func testRollback(t *testing.T, factory unitofwork.RepositoryFactory) {
	ctx := context.Background()
	alice := NewUser("alice@example.com", base)
	require.NoError(t, factory.NewUnitOfWork(ctx).UserRepository().Create(ctx, alice))

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	chat := NewChat(alice.Id, "discarded", base)
	require.NoError(t, uow.ChatRepository().Create(ctx, chat))
	require.NoError(t, uow.MessageRepository().Create(ctx, NewMessage(chat.Id, entity.MessageRoleUser, "hi", base)))
	require.NoError(t, uow.Rollback())

	fresh := factory.NewUnitOfWork(ctx)
	count, err := fresh.ChatRepository().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	committed := factory.NewUnitOfWork(ctx)
	require.NoError(t, committed.Begin(ctx))
	require.NoError(t, committed.ChatRepository().Create(ctx, NewChat(alice.Id, "kept", base)))
	require.NoError(t, committed.Commit())
	assert.NoError(t, committed.Rollback())

	count, err = factory.NewUnitOfWork(ctx).ChatRepository().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
