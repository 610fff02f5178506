package model

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	TokenHash string    `gorm:"type:varchar(64);primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (Session) TableName() string {
	return "sessions"
}
