package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserPreferences struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

// Timestamps are written by the services, so gorm's auto tracking is off.
type User struct {
	Id           uuid.UUID                           `gorm:"type:uuid;primaryKey"`
	FullName     string                              `gorm:"type:varchar(255);not null"`
	Email        string                              `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string                              `gorm:"type:varchar(255);not null"`
	Preferences  datatypes.JSONType[UserPreferences] `gorm:"not null"`
	LastLoginAt  *time.Time                          `gorm:"index"`
	CreatedAt    time.Time                           `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt    time.Time                           `gorm:"not null;autoUpdateTime:false"`

	Sessions []Session `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	Chats    []Chat    `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}
