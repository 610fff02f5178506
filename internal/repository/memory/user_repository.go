package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository struct {
	guard
}

func NewUserRepository(store *Store) contract.UserRepository {
	return &UserRepository{guard: guard{store: store}}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	defer r.write()()
	s := r.store

	if _, exists := s.users[user.Id]; exists {
		return fmt.Errorf("user %s already exists", user.Id)
	}
	if r.emailTaken(user.Email, uuid.Nil) {
		return contract.ErrDuplicateEmail
	}
	s.users[user.Id] = *user
	s.stamp(user.Id)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	defer r.write()()
	s := r.store

	current, ok := s.users[user.Id]
	if !ok {
		return nil
	}
	if r.emailTaken(user.Email, user.Id) {
		return contract.ErrDuplicateEmail
	}
	current.FullName = user.FullName
	current.Email = user.Email
	current.PasswordHash = user.PasswordHash
	current.Preferences = user.Preferences
	current.UpdatedAt = user.UpdatedAt
	s.users[user.Id] = current
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	defer r.write()()

	if current, ok := r.store.users[id]; ok {
		current.LastLoginAt = &at
		r.store.users[id] = current
	}
	return nil
}

func (r *UserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	users, err := r.FindAll(ctx, specs...)
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return users[0], nil
}

func (r *UserRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	defer r.read()()
	s := r.store

	all := make([]*entity.User, 0, len(s.users))
	for _, u := range s.users {
		u := u
		all = append(all, &u)
	}
	return selectRows(all, func(u *entity.User) row {
		return row{id: u.Id, email: strings.ToLower(u.Email), createdAt: u.CreatedAt, updatedAt: u.UpdatedAt, seq: s.seq[u.Id]}
	}, specs)
}

func (r *UserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	users, err := r.FindAll(ctx, specs...)
	return int64(len(users)), err
}

// emailTaken must be called with the lock held.
func (r *UserRepository) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range r.store.users {
		if id != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}
