package domain

import (
	"context"
	"time"
)

// Session binds an opaque token to an authenticated user identity.
// Expiry is checked by the Logic layer on every lookup; backends may
// additionally evict expired sessions on their own schedule.
type Session struct {
	Token     string
	User      User
	ExpiresAt time.Time
}

// SessionStore defines the contract for session storage. The default
// backend is in-process memory, so sessions do not survive a restart;
// a redis backend is available when that matters.
type SessionStore interface {
	// Put stores a session under its token.
	Put(ctx context.Context, session Session) error

	// Get returns the session for the given token.
	// Returns (nil, nil) when the token is unknown.
	Get(ctx context.Context, token string) (*Session, error)

	// Destroy removes the session for the given token. Destroying an
	// unknown token is not an error.
	Destroy(ctx context.Context, token string) error

	// Close releases backend resources.
	Close() error
}
