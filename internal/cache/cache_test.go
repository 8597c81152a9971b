package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/pricebook/internal/cache"
)

func TestMemory_GetBeforeSet(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory[string]()

	_, ok, err := store.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemory_SetThenGet(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory[map[string]int]()

	fetchedAt := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	snap := cache.Snapshot[map[string]int]{
		Value:     map[string]int{"a": 1, "b": 2},
		FetchedAt: fetchedAt,
	}
	require.NoError(t, store.Set(ctx, snap))

	got, ok, err := store.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, snap.Value, got.Value)
	require.Equal(t, fetchedAt, got.FetchedAt)
}

func TestMemory_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory[int]()

	require.NoError(t, store.Set(ctx, cache.Snapshot[int]{Value: 1}))
	require.NoError(t, store.Set(ctx, cache.Snapshot[int]{Value: 2}))

	got, ok, err := store.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, got.Value)
}

func TestMemory_Clear(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory[int]()

	require.NoError(t, store.Set(ctx, cache.Snapshot[int]{Value: 42}))
	require.NoError(t, store.Clear(ctx))

	_, ok, err := store.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	// Clearing an empty store is a no-op, not an error.
	require.NoError(t, store.Clear(ctx))
}
