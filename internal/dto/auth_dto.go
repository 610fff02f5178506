package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Auth DTOs ---

type SignupRequest struct {
	FullName        string `json:"full_name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PreferencesDTO struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

type UserResponse struct {
	Id          uuid.UUID      `json:"id"`
	FullName    string         `json:"full_name"`
	Email       string         `json:"email"`
	Role        string         `json:"role"`
	Preferences PreferencesDTO `json:"preferences"`
	CreatedAt   time.Time      `json:"created_at"`
	LastLoginAt *time.Time     `json:"last_login_at"`
}

// AuthResult is what signup and login hand back to the controller. Token goes
// into the session cookie and never into the body.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserResponse
}
