package access

import (
	"context"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/pkg/apperror"
	"ai-tutor-be/internal/repository/specification"
	"ai-tutor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (uuid.UUID, bool, error)
}

// Gate answers the three authorization questions: who is calling, do they own
// this resource, and are they an admin. Ownership is checked on every call and
// never cached.
type Gate struct {
	sessions   SessionResolver
	uowFactory unitofwork.RepositoryFactory
	roles      RoleResolver
}

func NewGate(sessions SessionResolver, uowFactory unitofwork.RepositoryFactory, roles RoleResolver) *Gate {
	return &Gate{
		sessions:   sessions,
		uowFactory: uowFactory,
		roles:      roles,
	}
}

// CurrentUser returns (nil, nil) when the token does not resolve to a live
// session and an existing user.
func (g *Gate) CurrentUser(ctx context.Context, token string) (*entity.User, error) {
	userId, ok, err := g.sessions.ResolveSession(ctx, token)
	if err != nil {
		return nil, apperror.Internal("failed to resolve session", err)
	}
	if !ok {
		return nil, nil
	}

	user, err := g.uowFactory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("failed to load user", err)
	}
	return user, nil
}

func (g *Gate) RequireAuthenticated(ctx context.Context, token string) (*entity.User, error) {
	user, err := g.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.AuthRequired("authentication required")
	}
	return user, nil
}

func (g *Gate) RequireOwnership(user *entity.User, chat *entity.Chat) error {
	if user == nil {
		return apperror.AuthRequired("authentication required")
	}
	if chat == nil {
		return apperror.NotFound("chat not found")
	}
	if chat.UserId != user.Id {
		return apperror.Forbidden("you do not have access to this chat")
	}
	return nil
}

// RequireMessageOwnership walks message -> chat -> owner.
func (g *Gate) RequireMessageOwnership(ctx context.Context, user *entity.User, message *entity.Message) error {
	if message == nil {
		return apperror.NotFound("message not found")
	}
	chat, err := g.uowFactory.NewUnitOfWork(ctx).ChatRepository().FindOne(ctx, specification.ByID{ID: message.ChatId})
	if err != nil {
		return apperror.Internal("failed to load chat", err)
	}
	return g.RequireOwnership(user, chat)
}

func (g *Gate) RequireAdmin(user *entity.User) error {
	if user == nil {
		return apperror.AuthRequired("authentication required")
	}
	if g.roles.RoleOf(user) != entity.RoleAdmin {
		return apperror.AdminRequired()
	}
	return nil
}

func (g *Gate) RoleOf(user *entity.User) entity.Role {
	return g.roles.RoleOf(user)
}
