package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcamargo/puzzlefeed/internal/cache"
)

func TestGetOrFetch_CachesResult(t *testing.T) {
	c := cache.New[int64, []int64](time.Minute)
	calls := 0
	fetch := func(ctx context.Context) ([]int64, error) {
		calls++
		return []int64{1, 2, 3}, nil
	}

	v, err := c.GetOrFetch(context.Background(), 7, fetch)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, v)

	v, err = c.GetOrFetch(context.Background(), 7, fetch)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, v)
	assert.Equal(t, 1, calls, "second call should hit the cache")
}

func TestGetOrFetch_ErrorNotCached(t *testing.T) {
	c := cache.New[string, int](time.Minute)
	boom := errors.New("boom")
	calls := 0

	_, err := c.GetOrFetch(context.Background(), "k", func(ctx context.Context) (int, error) {
		calls++
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	v, err := c.GetOrFetch(context.Background(), "k", func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls, "failed fetches must not be cached")
}

func TestGet_ExpiresAfterTTL(t *testing.T) {
	now := time.Now()
	c := cache.New[string, string](time.Minute).WithClock(func() time.Time { return now })

	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry should expire after the TTL")
}

func TestInvalidate(t *testing.T) {
	c := cache.New[string, int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	v, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	c.InvalidateAll()
	assert.Zero(t, c.Len())
}

func TestZeroTTL_DisablesCaching(t *testing.T) {
	c := cache.New[string, int](0)
	c.Set("k", 1)
	_, ok := c.Get("k")
	assert.False(t, ok)
}
