package dto

import "github.com/google/uuid"

type AskRequest struct {
	Message  string     `json:"message" validate:"required,max=8000"`
	ImageURL *string    `json:"image_url,omitempty" validate:"omitempty,max=2048"`
	Language string     `json:"language" validate:"omitempty,oneof=en bn"`
	ChatId   *uuid.UUID `json:"chat_id,omitempty"`
}

type AskResponse struct {
	Reply    string `json:"reply"`
	Language string `json:"language"`
	// Fallback is true when the model was unreachable and a canned reply was used.
	Fallback bool `json:"fallback"`
	// Set only when the turn was saved to a chat.
	UserMessage      *MessageResponse `json:"user_message,omitempty"`
	AssistantMessage *MessageResponse `json:"assistant_message,omitempty"`
}

type UploadImageResponse struct {
	ImageURL string `json:"image_url"`
}
