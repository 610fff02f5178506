package mapper

import (
	"ai-tutor-be/internal/dto"
	"ai-tutor-be/pkg/admin/dashboard"
)

func countsToResponse(c dashboard.Counts) dto.CategoryStatsResponse {
	return dto.CategoryStatsResponse{
		Total:      c.Total,
		Today:      c.Today,
		ThisWeek:   c.Week,
		ThisMonth:  c.Month,
		GrowthRate: c.GrowthRate(),
	}
}

// StatsToResponse drops the skipped-user list; partial failures stay server side.
func StatsToResponse(s *dashboard.Stats) *dto.AdminStatsResponse {
	if s == nil {
		return nil
	}
	return &dto.AdminStatsResponse{
		AsOf: s.AsOf,
		Users: dto.UserStatsResponse{
			CategoryStatsResponse: countsToResponse(s.Users),
			Active:                s.ActiveUsers,
		},
		Chats:              countsToResponse(s.Chats),
		Messages:           countsToResponse(s.Messages),
		AvgChatsPerUser:    s.AvgChatsPerUser,
		AvgMessagesPerChat: s.AvgMessagesPerChat,
	}
}
