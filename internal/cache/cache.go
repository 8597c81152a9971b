// Package cache provides snapshot stores with whole-value replacement
// semantics. A store holds at most one snapshot; expiry policy belongs to the
// caller, which compares FetchedAt against its own TTL.
package cache

import (
	"context"
	"sync"
	"time"
)

// Snapshot pairs a cached value with the time it was fetched.
type Snapshot[T any] struct {
	Value     T         `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Store persists one snapshot at a time. Implementations replace the whole
// snapshot atomically; a reader never observes a partial update.
type Store[T any] interface {
	// Get returns the current snapshot and whether one is present.
	Get(ctx context.Context) (Snapshot[T], bool, error)

	// Set replaces the current snapshot.
	Set(ctx context.Context, snap Snapshot[T]) error

	// Clear removes the current snapshot.
	Clear(ctx context.Context) error
}

// Memory is an in-process snapshot store guarded by a read-write mutex.
type Memory[T any] struct {
	mu       sync.RWMutex
	snapshot Snapshot[T]
	present  bool
}

// NewMemory creates an empty in-memory snapshot store.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{}
}

// Get returns the current snapshot and whether one is present.
func (m *Memory[T]) Get(_ context.Context) (Snapshot[T], bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.present {
		var zero Snapshot[T]
		return zero, false, nil
	}

	return m.snapshot, true, nil
}

// Set replaces the current snapshot.
func (m *Memory[T]) Set(_ context.Context, snap Snapshot[T]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshot = snap
	m.present = true
	return nil
}

// Clear removes the current snapshot.
func (m *Memory[T]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero Snapshot[T]
	m.snapshot = zero
	m.present = false
	return nil
}
