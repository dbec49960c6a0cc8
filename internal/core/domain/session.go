package domain

import "time"

// Session binds an opaque id to a user until ExpiresAt.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer usable at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
