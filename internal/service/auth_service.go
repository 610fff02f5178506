package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/mapper"
	"ai-tutor-be/internal/pkg/apperror"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/pkg/mailer"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/specification"
	"ai-tutor-be/internal/repository/unitofwork"
	"ai-tutor-be/pkg/auth/access"
	"ai-tutor-be/pkg/auth/password"
	"ai-tutor-be/pkg/auth/session"
	"ai-tutor-be/pkg/events"

	"github.com/google/uuid"
)

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResult, error)
	Logout(ctx context.Context, token string) error
	Me(user *entity.User) dto.UserResponse
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessions       *session.Manager
	hasher         password.Hasher
	roles          access.RoleResolver
	emailService   mailer.IEmailService
	eventPublisher IEventPublisher
	logger         logger.ILogger
	now            func() time.Time
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *session.Manager,
	hasher password.Hasher,
	roles access.RoleResolver,
	emailService mailer.IEmailService,
	eventPublisher IEventPublisher,
	logger logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		sessions:       sessions,
		hasher:         hasher,
		roles:          roles,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         logger,
		now:            time.Now,
	}
}

// NormalizeEmail is the stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func clockNow(clock func() time.Time) time.Time {
	return clock().UTC().Truncate(time.Microsecond)
}

func validateNewPassword(pw, confirm string, field, confirmField string) error {
	if utf8.RuneCountInString(pw) < password.MinLength {
		return apperror.Validation("password is too short", map[string]string{field: "min"})
	}
	if len(pw) > password.MaxBytes {
		return apperror.Validation("password is too long", map[string]string{field: "max"})
	}
	if pw != confirm {
		return apperror.Validation("passwords do not match", map[string]string{confirmField: "eqfield"})
	}
	return nil
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResult, error) {
	email := NormalizeEmail(req.Email)
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, apperror.Validation("full name is required", map[string]string{"full_name": "required"})
	}
	if err := validateNewPassword(req.Password, req.ConfirmPassword, "password", "confirm_password"); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	createdAt := clockNow(s.now)
	user := &entity.User{
		Id:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Preferences:  entity.DefaultPreferences(),
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, apperror.Internal("failed to check email", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("email already registered")
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		if errors.Is(err, contract.ErrDuplicateEmail) {
			return nil, apperror.Conflict("email already registered")
		}
		return nil, apperror.Internal("failed to create user", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit signup", err)
	}

	result, err := s.startSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "User signed up", map[string]interface{}{"user_id": user.Id})

	go func() {
		if err := s.emailService.SendWelcome(user.Email, user.FullName); err != nil {
			s.logger.Warn("AUTH", "Failed to send welcome email", map[string]interface{}{
				"user_id": user.Id,
				"error":   err.Error(),
			})
		}
	}()

	s.eventPublisher.Publish(ctx, events.New(events.UserRegistered, map[string]interface{}{
		"user_id": user.Id.String(),
		"email":   user.Email,
	}))

	return result, nil
}

// Login answers unknown email and wrong password the same way.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Internal("failed to load user", err)
	}
	if user == nil || !s.hasher.Compare(user.PasswordHash, req.Password) {
		return nil, apperror.AuthRequired("invalid email or password")
	}

	loginAt := clockNow(s.now)
	if err := uow.UserRepository().UpdateLastLogin(ctx, user.Id, loginAt); err != nil {
		return nil, apperror.Internal("failed to record login", err)
	}
	user.LastLoginAt = &loginAt

	result, err := s.startSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.eventPublisher.Publish(ctx, events.New(events.UserLoggedIn, map[string]interface{}{
		"user_id": user.Id.String(),
	}))

	return result, nil
}

// Logout is idempotent: an unknown or expired token still succeeds.
func (s *authService) Logout(ctx context.Context, token string) error {
	userId, ok, err := s.sessions.ResolveSession(ctx, token)
	if err != nil {
		s.logger.Warn("AUTH", "Could not resolve session on logout", map[string]interface{}{"error": err.Error()})
	}

	if err := s.sessions.DestroySession(ctx, token); err != nil {
		return apperror.Internal("failed to destroy session", err)
	}

	if ok {
		s.eventPublisher.Publish(ctx, events.New(events.UserLoggedOut, map[string]interface{}{
			"user_id": userId.String(),
		}))
	}
	return nil
}

func (s *authService) Me(user *entity.User) dto.UserResponse {
	return mapper.UserToResponse(user, s.roles.RoleOf(user))
}

func (s *authService) startSession(ctx context.Context, user *entity.User) (*dto.AuthResult, error) {
	token, sess, err := s.sessions.CreateSession(ctx, user.Id)
	if err != nil {
		return nil, apperror.Internal("failed to create session", err)
	}
	return &dto.AuthResult{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		User:      mapper.UserToResponse(user, s.roles.RoleOf(user)),
	}, nil
}
