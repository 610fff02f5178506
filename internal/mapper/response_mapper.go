package mapper

import (
	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/entity"
)

// UserToResponse never carries the password hash.
func UserToResponse(u *entity.User, role entity.Role) dto.UserResponse {
	return dto.UserResponse{
		Id:       u.Id,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     string(role),
		Preferences: dto.PreferencesDTO{
			Language: u.Preferences.Language,
			Theme:    u.Preferences.Theme,
		},
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

func ChatToResponse(c *entity.Chat) dto.ChatResponse {
	return dto.ChatResponse{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ChatsToResponse(chats []*entity.Chat) []dto.ChatResponse {
	res := make([]dto.ChatResponse, 0, len(chats))
	for _, c := range chats {
		res = append(res, ChatToResponse(c))
	}
	return res
}

func MessageToResponse(m *entity.Message) dto.MessageResponse {
	return dto.MessageResponse{
		Id:        m.Id,
		ChatId:    m.ChatId,
		Role:      string(m.Role),
		Content:   m.Content,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
	}
}

func ChatDetailToResponse(c *entity.Chat, messages []*entity.Message) dto.ChatDetailResponse {
	res := dto.ChatDetailResponse{
		ChatResponse: ChatToResponse(c),
		Messages:     make([]dto.MessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		res.Messages = append(res.Messages, MessageToResponse(m))
	}
	return res
}
