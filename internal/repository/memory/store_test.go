package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/repotest"
	"ai-tutor-be/internal/repository/specification"
	"ai-tutor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositories(t *testing.T) {
	repotest.Run(t, func(t *testing.T) unitofwork.RepositoryFactory {
		return NewRepositoryFactory(NewStore())
	})
}

func TestUnsupportedSpecification(t *testing.T) {
	type unknown struct{ specification.ByID }

	_, err := NewUserRepository(NewStore()).FindAll(context.Background(), unknown{})
	assert.Error(t, err)
}

func TestTransactionBlocksConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	factory := NewRepositoryFactory(store)
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	user := repotest.NewUser("a@example.com", at)
	require.NoError(t, NewUserRepository(store).Create(ctx, user))
	chat := repotest.NewChat(user.Id, "c", at)
	require.NoError(t, NewChatRepository(store).Create(ctx, chat))
	require.NoError(t, NewMessageRepository(store).Create(ctx, repotest.NewMessage(chat.Id, entity.MessageRoleUser, "hi", at)))

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.MessageRepository().DeleteByChatID(ctx, chat.Id))

	var (
		wg       sync.WaitGroup
		observed *entity.Chat
		msgs     int64
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		observed, _ = NewChatRepository(store).FindOne(ctx, specification.ByID{ID: chat.Id})
		msgs, _ = NewMessageRepository(store).Count(ctx, specification.ByChatID{ChatID: chat.Id})
	}()

	// the reader cannot see the half-deleted chat
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, uow.ChatRepository().Delete(ctx, chat.Id))
	require.NoError(t, uow.Commit())
	wg.Wait()

	assert.Nil(t, observed)
	assert.Zero(t, msgs)
}

func TestMemorySessionRepository(t *testing.T) {
	repotest.RunSessions(t, func(t *testing.T) (contract.SessionRepository, uuid.UUID) {
		return NewSessionRepository(time.Minute), uuid.New()
	})
}
