package mapper

import (
	"errors"
	"testing"
	"time"

	"ai-tutor-be/pkg/admin/dashboard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStatsToResponse(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	res := StatsToResponse(&dashboard.Stats{
		AsOf:            asOf,
		Users:           dashboard.Counts{Total: 4, Today: 1, Week: 2, Month: 3},
		ActiveUsers:     1,
		Messages:        dashboard.Counts{Total: 7, Week: 4},
		AvgChatsPerUser: 1,
		Skipped:         []dashboard.UserFailure{{UserId: uuid.New(), Err: errors.New("x")}},
	})

	assert.Equal(t, asOf, res.AsOf)
	assert.EqualValues(t, 4, res.Users.Total)
	assert.EqualValues(t, 3, res.Users.ThisMonth)
	assert.EqualValues(t, 1, res.Users.Active)
	assert.Equal(t, 50.0, res.Users.GrowthRate)
	assert.Equal(t, 57.1, res.Messages.GrowthRate)
	assert.Zero(t, res.Chats.GrowthRate)

	assert.Nil(t, StatsToResponse(nil))
}
