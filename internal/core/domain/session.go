package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the per-browser authentication context created at sign-in.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSession binds a freshly authenticated user to id. The password never
// leaves the sign-in request.
func NewSession(id string, user User, now time.Time) *Session {
	return &Session{
		ID:        id,
		User:      user.WithoutPassword(),
		CreatedAt: now.UTC(),
	}
}
