package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// RateLimiter is a fixed one-minute window counter in Redis
type RateLimiter struct {
	client            *Client
	requestsPerMinute int
	burst             int
	now               func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *Client, requestsPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		client:            client,
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
		now:               time.Now,
	}
}

// Limit returns the number of requests allowed per window
func (r *RateLimiter) Limit() int {
	return r.requestsPerMinute + r.burst
}

// Allow counts a request against key's current window.
// It reports whether the request fits, how many remain and when the window resets.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	fullKey, windowEnd := r.window(key)

	var incr *redis.IntCmd
	_, err := r.client.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, fullKey)
		pipe.ExpireNX(ctx, fullKey, time.Minute)
		return nil
	})
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("failed to execute rate limit check: %w", err)
	}

	count := int(incr.Val())
	return count <= r.Limit(), max(r.Limit()-count, 0), windowEnd, nil
}

// Reset resets the current window's counter for a key
func (r *RateLimiter) Reset(ctx context.Context, key string) error {
	fullKey, _ := r.window(key)
	return r.client.rdb.Del(ctx, fullKey).Err()
}

// window returns the counter key for the minute containing now and when that minute ends
func (r *RateLimiter) window(key string) (string, time.Time) {
	start := r.now().Truncate(time.Minute)
	return fmt.Sprintf("%s%s:%d", rateLimitPrefix, key, start.Unix()), start.Add(time.Minute)
}
