package memory

import (
	"context"
	"fmt"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatRepository struct {
	guard
}

func NewChatRepository(store *Store) contract.ChatRepository {
	return &ChatRepository{guard: guard{store: store}}
}

func (r *ChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	defer r.write()()
	s := r.store

	if _, ok := s.users[chat.UserId]; !ok {
		return fmt.Errorf("chat owner %s does not exist", chat.UserId)
	}
	if _, exists := s.chats[chat.Id]; exists {
		return fmt.Errorf("chat %s already exists", chat.Id)
	}
	s.chats[chat.Id] = *chat
	s.stamp(chat.Id)
	return nil
}

func (r *ChatRepository) UpdateTitle(ctx context.Context, id uuid.UUID, title string, at time.Time) error {
	defer r.write()()

	if chat, ok := r.store.chats[id]; ok {
		chat.Title = title
		chat.UpdatedAt = at
		r.store.chats[id] = chat
	}
	return nil
}

func (r *ChatRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	defer r.write()()

	if chat, ok := r.store.chats[id]; ok {
		chat.UpdatedAt = at
		r.store.chats[id] = chat
	}
	return nil
}

// Delete refuses to orphan messages, mirroring the foreign key.
func (r *ChatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.write()()
	s := r.store

	for _, m := range s.messages {
		if m.ChatId == id {
			return fmt.Errorf("chat %s still has messages", id)
		}
	}
	delete(s.chats, id)
	delete(s.seq, id)
	return nil
}

func (r *ChatRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	chats, err := r.FindAll(ctx, specs...)
	if err != nil || len(chats) == 0 {
		return nil, err
	}
	return chats[0], nil
}

func (r *ChatRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	defer r.read()()
	s := r.store

	all := make([]*entity.Chat, 0, len(s.chats))
	for _, c := range s.chats {
		c := c
		all = append(all, &c)
	}
	return selectRows(all, func(c *entity.Chat) row {
		return row{id: c.Id, userID: c.UserId, createdAt: c.CreatedAt, updatedAt: c.UpdatedAt, seq: s.seq[c.Id]}
	}, specs)
}

func (r *ChatRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	chats, err := r.FindAll(ctx, specs...)
	return int64(len(chats)), err
}
