package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/mapper"
	"ai-tutor-be/internal/pkg/apperror"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/specification"
	"ai-tutor-be/internal/repository/unitofwork"
	"ai-tutor-be/pkg/auth/access"
	"ai-tutor-be/pkg/auth/password"
)

type IUserService interface {
	GetProfile(ctx context.Context, user *entity.User) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, user *entity.User, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UpdatePreferences(ctx context.Context, user *entity.User, req *dto.UpdatePreferencesRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, user *entity.User, req *dto.ChangePasswordRequest) error
	DeleteAccount(ctx context.Context, user *entity.User) error
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	hasher     password.Hasher
	roles      access.RoleResolver
	logger     logger.ILogger
	now        func() time.Time
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, hasher password.Hasher, roles access.RoleResolver, logger logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		hasher:     hasher,
		roles:      roles,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *userService) GetProfile(ctx context.Context, user *entity.User) (*dto.UserResponse, error) {
	res := mapper.UserToResponse(user, s.roles.RoleOf(user))
	return &res, nil
}

// mutate reloads the user under lock, applies fn and writes the row back.
func (s *userService) mutate(ctx context.Context, user *entity.User, fn func(u *entity.User) error) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	current, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id}, specification.ForUpdate{})
	if err != nil {
		return nil, apperror.Internal("failed to load user", err)
	}
	if current == nil {
		return nil, apperror.NotFound("user not found")
	}

	if err := fn(current); err != nil {
		return nil, err
	}
	current.UpdatedAt = clockNow(s.now)

	if err := uow.UserRepository().Update(ctx, current); err != nil {
		if errors.Is(err, contract.ErrDuplicateEmail) {
			return nil, apperror.Conflict("email already registered")
		}
		return nil, apperror.Internal("failed to update user", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit user update", err)
	}
	return current, nil
}

func (s *userService) UpdateProfile(ctx context.Context, user *entity.User, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, apperror.Validation("full name is required", map[string]string{"full_name": "required"})
	}

	updated, err := s.mutate(ctx, user, func(u *entity.User) error {
		u.FullName = fullName
		if req.Email != "" {
			u.Email = NormalizeEmail(req.Email)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := mapper.UserToResponse(updated, s.roles.RoleOf(updated))
	return &res, nil
}

// UpdatePreferences changes only the fields that were sent.
func (s *userService) UpdatePreferences(ctx context.Context, user *entity.User, req *dto.UpdatePreferencesRequest) (*dto.UserResponse, error) {
	if req.Language != "" && req.Language != entity.LanguageEnglish && req.Language != entity.LanguageBangla {
		return nil, apperror.Validation("unsupported language", map[string]string{"language": "oneof"})
	}
	switch req.Theme {
	case "", entity.ThemeLight, entity.ThemeDark, entity.ThemeSystem:
	default:
		return nil, apperror.Validation("unsupported theme", map[string]string{"theme": "oneof"})
	}

	updated, err := s.mutate(ctx, user, func(u *entity.User) error {
		if req.Language != "" {
			u.Preferences.Language = req.Language
		}
		if req.Theme != "" {
			u.Preferences.Theme = req.Theme
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := mapper.UserToResponse(updated, s.roles.RoleOf(updated))
	return &res, nil
}

func (s *userService) ChangePassword(ctx context.Context, user *entity.User, req *dto.ChangePasswordRequest) error {
	if err := validateNewPassword(req.NewPassword, req.ConfirmPassword, "new_password", "confirm_password"); err != nil {
		return err
	}

	_, err := s.mutate(ctx, user, func(u *entity.User) error {
		if !s.hasher.Compare(u.PasswordHash, req.CurrentPassword) {
			return apperror.Validation("current password is incorrect", map[string]string{"current_password": "mismatch"})
		}
		hash, err := s.hasher.Hash(req.NewPassword)
		if err != nil {
			return apperror.Internal("failed to hash password", err)
		}
		u.PasswordHash = hash
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("AUTH", "Password changed", map[string]interface{}{"user_id": user.Id})
	return nil
}

// DeleteAccount reports success and deletes nothing. Users are never hard
// deleted; the request is logged for follow-up.
func (s *userService) DeleteAccount(ctx context.Context, user *entity.User) error {
	s.logger.Warn("AUTH", "Account deletion requested but not performed", map[string]interface{}{
		"user_id": user.Id,
	})
	return nil
}
