package memory

import (
	"context"
	"fmt"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository struct {
	guard
}

func NewMessageRepository(store *Store) contract.MessageRepository {
	return &MessageRepository{guard: guard{store: store}}
}

func (r *MessageRepository) Create(ctx context.Context, message *entity.Message) error {
	defer r.write()()
	s := r.store

	if _, ok := s.chats[message.ChatId]; !ok {
		return fmt.Errorf("chat %s does not exist", message.ChatId)
	}
	if _, exists := s.messages[message.Id]; exists {
		return fmt.Errorf("message %s already exists", message.Id)
	}
	s.messages[message.Id] = *message
	s.stamp(message.Id)
	return nil
}

func (r *MessageRepository) DeleteByChatID(ctx context.Context, chatId uuid.UUID) error {
	defer r.write()()
	s := r.store

	for id, m := range s.messages {
		if m.ChatId == chatId {
			delete(s.messages, id)
			delete(s.seq, id)
		}
	}
	return nil
}

func (r *MessageRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	msgs, err := r.FindAll(ctx, specs...)
	if err != nil || len(msgs) == 0 {
		return nil, err
	}
	return msgs[0], nil
}

func (r *MessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	defer r.read()()
	s := r.store

	all := make([]*entity.Message, 0, len(s.messages))
	for _, m := range s.messages {
		m := m
		all = append(all, &m)
	}
	return selectRows(all, func(m *entity.Message) row {
		return row{id: m.Id, chatID: m.ChatId, createdAt: m.CreatedAt, seq: s.seq[m.Id]}
	}, specs)
}

func (r *MessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	msgs, err := r.FindAll(ctx, specs...)
	return int64(len(msgs)), err
}
