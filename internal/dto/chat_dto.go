package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequest struct {
	Title string `json:"title" validate:"max=200"`
}

// ListChatsQuery pages the chat list. Zero values list everything.
type ListChatsQuery struct {
	Limit  int `json:"limit" query:"limit" validate:"min=0,max=100"`
	Offset int `json:"offset" query:"offset" validate:"min=0"`
}

type UpdateChatRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

type AppendMessageRequest struct {
	Role     string  `json:"role" validate:"required,oneof=user assistant system"`
	Content  string  `json:"content" validate:"required,max=20000"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,max=2048"`
}

type ChatResponse struct {
	Id        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	ChatId    uuid.UUID `json:"chat_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatDetailResponse struct {
	ChatResponse
	Messages []MessageResponse `json:"messages"`
}
