package service

import (
	"context"
	"strings"
	"time"

	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/mapper"
	"ai-tutor-be/internal/pkg/apperror"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/specification"
	"ai-tutor-be/internal/repository/unitofwork"
	"ai-tutor-be/pkg/auth/access"
	"ai-tutor-be/pkg/events"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateChat(ctx context.Context, user *entity.User, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	ListChats(ctx context.Context, user *entity.User, query *dto.ListChatsQuery) ([]dto.ChatResponse, error)
	GetChat(ctx context.Context, user *entity.User, chatId uuid.UUID) (*dto.ChatDetailResponse, error)
	UpdateChatTitle(ctx context.Context, user *entity.User, chatId uuid.UUID, req *dto.UpdateChatRequest) (*dto.ChatResponse, error)
	DeleteChat(ctx context.Context, user *entity.User, chatId uuid.UUID) error
	AppendMessage(ctx context.Context, user *entity.User, chatId uuid.UUID, req *dto.AppendMessageRequest) (*dto.MessageResponse, error)
	AppendExchange(ctx context.Context, user *entity.User, chatId uuid.UUID, question, answer *dto.AppendMessageRequest) (*dto.MessageResponse, *dto.MessageResponse, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	gate           *access.Gate
	eventPublisher IEventPublisher
	logger         logger.ILogger
	now            func() time.Time
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, gate *access.Gate, eventPublisher IEventPublisher, logger logger.ILogger) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		gate:           gate,
		eventPublisher: eventPublisher,
		logger:         logger,
		now:            time.Now,
	}
}

// lockOwnedChat loads the chat with a row lock and checks ownership. It must
// run inside a transaction.
func (cs *chatService) lockOwnedChat(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, chatId uuid.UUID) (*entity.Chat, error) {
	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId}, specification.ForUpdate{})
	if err != nil {
		return nil, apperror.Internal("failed to load chat", err)
	}
	if err := cs.gate.RequireOwnership(user, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (cs *chatService) CreateChat(ctx context.Context, user *entity.User, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = entity.DefaultChatTitle
	}

	createdAt := clockNow(cs.now)
	chat := &entity.Chat{
		Id:        uuid.New(),
		UserId:    user.Id,
		Title:     title,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, apperror.Internal("failed to create chat", err)
	}

	cs.eventPublisher.Publish(ctx, events.New(events.ChatCreated, map[string]interface{}{
		"chat_id": chat.Id.String(),
		"user_id": user.Id.String(),
	}))

	res := mapper.ChatToResponse(chat)
	return &res, nil
}

// ListChats returns the user's chats, most recently updated first. A nil
// query lists them all.
func (cs *chatService) ListChats(ctx context.Context, user *entity.User, query *dto.ListChatsQuery) ([]dto.ChatResponse, error) {
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: user.Id},
		specification.RecentlyUpdated{},
	}
	if query != nil {
		if query.Limit < 0 || query.Offset < 0 {
			return nil, apperror.Validation("limit and offset must not be negative", nil)
		}
		specs = append(specs, specification.Pagination{Limit: query.Limit, Offset: query.Offset})
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	chats, err := uow.ChatRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal("failed to list chats", err)
	}
	return mapper.ChatsToResponse(chats), nil
}

// GetChat reads the chat and its messages in one transaction, holding the
// chat row so that a concurrent delete is seen entirely or not at all.
func (cs *chatService) GetChat(ctx context.Context, user *entity.User, chatId uuid.UUID) (*dto.ChatDetailResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	chat, err := cs.lockOwnedChat(ctx, uow, user, chatId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chat.Id},
		specification.Chronological{},
	)
	if err != nil {
		return nil, apperror.Internal("failed to load messages", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit read", err)
	}

	res := mapper.ChatDetailToResponse(chat, messages)
	return &res, nil
}

func (cs *chatService) UpdateChatTitle(ctx context.Context, user *entity.User, chatId uuid.UUID, req *dto.UpdateChatRequest) (*dto.ChatResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("title is required", map[string]string{"title": "required"})
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	chat, err := cs.lockOwnedChat(ctx, uow, user, chatId)
	if err != nil {
		return nil, err
	}

	updatedAt := clockNow(cs.now)
	if err := uow.ChatRepository().UpdateTitle(ctx, chat.Id, title, updatedAt); err != nil {
		return nil, apperror.Internal("failed to rename chat", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit rename", err)
	}

	chat.Title = title
	chat.UpdatedAt = updatedAt
	res := mapper.ChatToResponse(chat)
	return &res, nil
}

// DeleteChat removes the messages and then the chat in one transaction.
func (cs *chatService) DeleteChat(ctx context.Context, user *entity.User, chatId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	chat, err := cs.lockOwnedChat(ctx, uow, user, chatId)
	if err != nil {
		return err
	}

	if err := uow.MessageRepository().DeleteByChatID(ctx, chat.Id); err != nil {
		return apperror.Internal("failed to delete messages", err)
	}
	if err := uow.ChatRepository().Delete(ctx, chat.Id); err != nil {
		return apperror.Internal("failed to delete chat", err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Internal("failed to commit delete", err)
	}

	cs.logger.Info("CHAT", "Chat deleted", map[string]interface{}{"chat_id": chat.Id, "user_id": user.Id})
	cs.eventPublisher.Publish(ctx, events.New(events.ChatDeleted, map[string]interface{}{
		"chat_id": chat.Id.String(),
		"user_id": user.Id.String(),
	}))
	return nil
}

// AppendMessage stores the message and moves chat.updatedAt to its createdAt
// in the same transaction.
func (cs *chatService) AppendMessage(ctx context.Context, user *entity.User, chatId uuid.UUID, req *dto.AppendMessageRequest) (*dto.MessageResponse, error) {
	msgs, err := cs.appendMessages(ctx, user, chatId, req)
	if err != nil {
		return nil, err
	}
	res := mapper.MessageToResponse(msgs[0])
	return &res, nil
}

// AppendExchange stores a question and its answer together. Either both
// messages are kept or neither is.
func (cs *chatService) AppendExchange(ctx context.Context, user *entity.User, chatId uuid.UUID, question, answer *dto.AppendMessageRequest) (*dto.MessageResponse, *dto.MessageResponse, error) {
	msgs, err := cs.appendMessages(ctx, user, chatId, question, answer)
	if err != nil {
		return nil, nil, err
	}
	q := mapper.MessageToResponse(msgs[0])
	a := mapper.MessageToResponse(msgs[1])
	return &q, &a, nil
}

func newMessage(chatId uuid.UUID, req *dto.AppendMessageRequest, at time.Time) (*entity.Message, error) {
	role := entity.MessageRole(req.Role)
	if !role.Valid() {
		return nil, apperror.Validation("unsupported message role", map[string]string{"role": "oneof"})
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperror.Validation("content is required", map[string]string{"content": "required"})
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperror.Internal("failed to generate message id", err)
	}

	var imageURL *string
	if req.ImageURL != nil && strings.TrimSpace(*req.ImageURL) != "" {
		trimmed := strings.TrimSpace(*req.ImageURL)
		imageURL = &trimmed
	}

	return &entity.Message{
		Id:        id,
		ChatId:    chatId,
		Role:      role,
		Content:   req.Content,
		ImageURL:  imageURL,
		CreatedAt: at,
	}, nil
}

func (cs *chatService) appendMessages(ctx context.Context, user *entity.User, chatId uuid.UUID, reqs ...*dto.AppendMessageRequest) ([]*entity.Message, error) {
	// validate before taking the chat lock
	for _, req := range reqs {
		if _, err := newMessage(chatId, req, time.Time{}); err != nil {
			return nil, err
		}
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	chat, err := cs.lockOwnedChat(ctx, uow, user, chatId)
	if err != nil {
		return nil, err
	}

	msgs := make([]*entity.Message, 0, len(reqs))
	for _, req := range reqs {
		msg, err := newMessage(chat.Id, req, clockNow(cs.now))
		if err != nil {
			return nil, err
		}
		if err := uow.MessageRepository().Create(ctx, msg); err != nil {
			return nil, apperror.Internal("failed to store message", err)
		}
		msgs = append(msgs, msg)
	}
	if err := uow.ChatRepository().Touch(ctx, chat.Id, msgs[len(msgs)-1].CreatedAt); err != nil {
		return nil, apperror.Internal("failed to update chat", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit message", err)
	}
	return msgs, nil
}
