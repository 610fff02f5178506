package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultChatTitle = "New Conversation"

type Chat struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
