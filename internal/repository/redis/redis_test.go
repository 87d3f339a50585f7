package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/teetime/internal/config"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := NewClient(context.Background(), config.RedisConfig{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient(context.Background(), config.RedisConfig{Host: "127.0.0.1", Port: 1})
	assert.Error(t, err)
}

func TestContextCache(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewContextCache(client)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "2024-06-01")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "2024-06-01", "Pine Valley: 4 slots", 30*time.Second))
	require.NoError(t, cache.Set(ctx, "2024-06-02", "Pine Valley: 2 slots", 30*time.Second))

	text, ok, err := cache.Get(ctx, "2024-06-01")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Pine Valley: 4 slots", text)

	mr.FastForward(31 * time.Second)
	_, ok, err = cache.Get(ctx, "2024-06-01")
	require.NoError(t, err)
	assert.False(t, ok, "entries expire after the ttl")

	require.NoError(t, cache.Set(ctx, "2024-06-01", "fresh", time.Minute))
	require.NoError(t, mr.Set("unrelated", "keep"))
	require.NoError(t, cache.Invalidate(ctx))

	_, ok, err = cache.Get(ctx, "2024-06-01")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, mr.Exists("unrelated"))
}

func TestRateLimiter(t *testing.T) {
	client, _ := newTestClient(t)
	limiter := NewRateLimiter(client, 2, 1)
	now := time.Date(2024, 6, 1, 9, 0, 30, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, remaining, reset, err := limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2-i, remaining)
		assert.Equal(t, time.Date(2024, 6, 1, 9, 1, 0, 0, time.UTC), reset)
	}

	allowed, remaining, _, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	// other keys have their own budget
	allowed, _, _, err = limiter.Allow(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, allowed)

	// a new window starts a new count
	now = now.Add(time.Minute)
	allowed, _, _, err = limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "user-1"))
	_, remaining, _, err = limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)
}
