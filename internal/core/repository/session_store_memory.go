package repository

import (
	"context"
	"sync"
	"time"

	"github.com/meditrust/storefront/internal/core/domain"
)

// MemorySessionStore implements domain.SessionStore with an in-process
// map. Sessions are lost on restart, which is the accepted default for
// this service.
//
// Expired sessions are dropped lazily on Get and reaped by a background
// sweep, so an abandoned login cannot pin memory forever.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session

	stop chan struct{}
	once sync.Once
}

// NewMemorySessionStore creates a MemorySessionStore and starts its
// sweep loop with the given interval.
func NewMemorySessionStore(sweepInterval time.Duration) *MemorySessionStore {
	s := &MemorySessionStore{
		sessions: make(map[string]domain.Session),
		stop:     make(chan struct{}),
	}
	go s.sweep(sweepInterval)
	return s
}

// Put stores a session under its token.
func (s *MemorySessionStore) Put(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

// Get returns the session for the given token, or (nil, nil) when the
// token is unknown or the session already expired.
func (s *MemorySessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if time.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, nil
	}

	return &session, nil
}

// Destroy removes the session for the given token.
func (s *MemorySessionStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Close stops the sweep loop.
func (s *MemorySessionStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *MemorySessionStore) sweep(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for token, session := range s.sessions {
				if now.After(session.ExpiresAt) {
					delete(s.sessions, token)
				}
			}
			s.mu.Unlock()
		}
	}
}
