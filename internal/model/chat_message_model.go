package model

import (
	"time"

	"github.com/google/uuid"
)

// Message ids are UUIDv7, so (created_at, id) is a stable insertion order.
type Message struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatId    uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_chat_created,priority:1"`
	Role      string    `gorm:"type:varchar(20);not null"`
	Content   string    `gorm:"type:text;not null"`
	ImageURL  *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index:idx_messages_chat_created,priority:2;autoCreateTime:false"`
}

func (Message) TableName() string {
	return "messages"
}
