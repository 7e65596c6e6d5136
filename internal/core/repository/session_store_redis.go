package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meditrust/storefront/internal/core/domain"
)

// RedisSessionStore implements domain.SessionStore on redis. The key
// TTL mirrors the session expiry, so redis evicts stale sessions on its
// own and Get simply misses afterwards.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore connects to redis using the given URL
// (redis://host:port/db) and verifies connectivity with a ping.
func NewRedisSessionStore(ctx context.Context, url string) (*RedisSessionStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisSessionStore{client: client}, nil
}

func sessionKey(token string) string {
	return "session:" + token
}

// Put stores a session under its token with a TTL matching its expiry.
func (s *RedisSessionStore) Put(ctx context.Context, session domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session for user %d already expired", session.User.ID)
	}

	return s.client.Set(ctx, sessionKey(session.Token), payload, ttl).Err()
}

// Get returns the session for the given token.
// Returns (nil, nil) when the token is unknown or already evicted.
func (s *RedisSessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	return &session, nil
}

// Destroy removes the session for the given token.
func (s *RedisSessionStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

// Close releases the redis client.
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}
