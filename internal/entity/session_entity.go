package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session binds a token to a user until ExpiresAt. Only the hash of the token
// is ever stored.
type Session struct {
	TokenHash string
	UserId    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the session is no longer valid at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
