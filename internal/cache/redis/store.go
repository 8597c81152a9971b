// Package redis provides a Redis-backed snapshot store so multiple engine
// instances can share the pricing and catalog caches.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/pricebook/internal/cache"
)

// Server-side expiry backstop beyond the engine's own TTL check, so a stale
// snapshot still serves as a fallback shortly after expiry.
const expiryMargin = time.Hour

// Store keeps one JSON-encoded snapshot under a single Redis key, replaced
// whole on every write.
type Store[T any] struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewStore creates a Redis snapshot store. The key must be unique per cached
// value; ttl is the engine-level TTL the server-side expiry is derived from.
func NewStore[T any](client *redis.Client, key string, ttl time.Duration) *Store[T] {
	return &Store[T]{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Get returns the current snapshot and whether one is present. A missing key
// is not an error.
func (s *Store[T]) Get(ctx context.Context) (cache.Snapshot[T], bool, error) {
	var zero cache.Snapshot[T]

	payload, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap cache.Snapshot[T]
	if err := json.Unmarshal(payload, &snap); err != nil {
		return zero, false, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return snap, true, nil
}

// Set replaces the current snapshot.
func (s *Store[T]) Set(ctx context.Context, snap cache.Snapshot[T]) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.key, payload, s.ttl+expiryMargin).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

// Clear removes the current snapshot.
func (s *Store[T]) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
