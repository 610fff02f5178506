package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	LanguageEnglish = "en"
	LanguageBangla  = "bn"

	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

type Preferences struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

func DefaultPreferences() Preferences {
	return Preferences{Language: LanguageEnglish, Theme: ThemeLight}
}

type User struct {
	Id           uuid.UUID
	FullName     string
	Email        string
	PasswordHash string
	Preferences  Preferences
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role is the capability level resolved for a user at request time.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)
