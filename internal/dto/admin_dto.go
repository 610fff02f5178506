package dto

import "time"

type CategoryStatsResponse struct {
	Total      int64   `json:"total"`
	Today      int64   `json:"today"`
	ThisWeek   int64   `json:"this_week"`
	ThisMonth  int64   `json:"this_month"`
	GrowthRate float64 `json:"growth_rate"`
}

type UserStatsResponse struct {
	CategoryStatsResponse
	Active int64 `json:"active"`
}

type AdminStatsResponse struct {
	AsOf               time.Time             `json:"as_of"`
	Users              UserStatsResponse     `json:"users"`
	Chats              CategoryStatsResponse `json:"chats"`
	Messages           CategoryStatsResponse `json:"messages"`
	AvgChatsPerUser    float64               `json:"avg_chats_per_user"`
	AvgMessagesPerChat float64               `json:"avg_messages_per_chat"`
}
