package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/specification"
	"ai-tutor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Counts is one category broken down by creation window.
type Counts struct {
	Total int64
	Today int64
	Week  int64
	Month int64
}

// GrowthRate is the share of Total created in the trailing week, in percent.
func (c Counts) GrowthRate() float64 {
	return ratio(float64(c.Week)*100, c.Total)
}

func (c *Counts) add(other Counts) {
	c.Total += other.Total
	c.Today += other.Today
	c.Week += other.Week
	c.Month += other.Month
}

// UserFailure records a user whose chats or messages could not be read.
type UserFailure struct {
	UserId uuid.UUID
	Err    error
}

type Stats struct {
	AsOf               time.Time
	Users              Counts
	ActiveUsers        int64
	Chats              Counts
	Messages           Counts
	AvgChatsPerUser    float64
	AvgMessagesPerChat float64
	// Skipped users still count as users but contribute no chats or messages.
	Skipped []UserFailure
}

// Aggregator handles dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// windows are anchored at midnight of asOf in asOf's own location.
type windows struct {
	today time.Time
	week  time.Time
	month time.Time
}

func windowsFor(asOf time.Time) windows {
	y, m, d := asOf.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, asOf.Location())
	return windows{
		today: midnight,
		week:  midnight.AddDate(0, 0, -7),
		month: midnight.AddDate(0, 0, -30),
	}
}

func (w windows) count(c *Counts, at time.Time) {
	c.Total++
	if !at.Before(w.today) {
		c.Today++
	}
	if !at.Before(w.week) {
		c.Week++
	}
	if !at.Before(w.month) {
		c.Month++
	}
}

// ComputeStats scans every user and the chats and messages reachable from
// them. Only a failure to list users fails the call; a failure on one user's
// data is logged and that user is left out of the chat and message counts.
func (a *Aggregator) ComputeStats(ctx context.Context, uow unitofwork.UnitOfWork, asOf time.Time) (*Stats, error) {
	users, err := uow.UserRepository().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	w := windowsFor(asOf)
	stats := &Stats{AsOf: asOf}

	for _, user := range users {
		w.count(&stats.Users, user.CreatedAt)
		if user.LastLoginAt != nil && !user.LastLoginAt.Before(w.week) {
			stats.ActiveUsers++
		}

		chats, messages, err := a.foldUser(ctx, uow, w, user)
		if err != nil {
			a.logger.Warn("ADMIN", "Skipping user in stats", map[string]interface{}{
				"user_id": user.Id,
				"error":   err.Error(),
			})
			stats.Skipped = append(stats.Skipped, UserFailure{UserId: user.Id, Err: err})
			continue
		}
		stats.Chats.add(chats)
		stats.Messages.add(messages)
	}

	stats.AvgChatsPerUser = ratio(float64(stats.Chats.Total), stats.Users.Total)
	stats.AvgMessagesPerChat = ratio(float64(stats.Messages.Total), stats.Chats.Total)

	return stats, nil
}

// foldUser tallies one user's chats and messages. Nothing is merged into the
// totals unless the whole user succeeds.
func (a *Aggregator) foldUser(ctx context.Context, uow unitofwork.UnitOfWork, w windows, user *entity.User) (Counts, Counts, error) {
	var chats, messages Counts
	if user.Id == uuid.Nil {
		return chats, messages, fmt.Errorf("user has no id")
	}

	userChats, err := uow.ChatRepository().FindAll(ctx, specification.UserOwnedBy{UserID: user.Id})
	if err != nil {
		return chats, messages, fmt.Errorf("list chats: %w", err)
	}

	for _, chat := range userChats {
		w.count(&chats, chat.CreatedAt)

		chatMessages, err := uow.MessageRepository().FindAll(ctx, specification.ByChatID{ChatID: chat.Id})
		if err != nil {
			return Counts{}, Counts{}, fmt.Errorf("list messages of chat %s: %w", chat.Id, err)
		}
		for _, m := range chatMessages {
			w.count(&messages, m.CreatedAt)
		}
	}
	return chats, messages, nil
}

// ratio divides and rounds to one decimal; a zero denominator yields 0.
func ratio(numerator float64, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return math.Round(numerator/float64(denominator)*10) / 10
}
