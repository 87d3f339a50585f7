package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const contextCachePrefix = "chat:context:"

// ContextCache stores the rendered assistant context under date and data version keys
type ContextCache struct {
	client *Client
}

// NewContextCache creates a new context cache
func NewContextCache(client *Client) *ContextCache {
	return &ContextCache{client: client}
}

// Get returns the cached context for key; ok is false on a miss
func (c *ContextCache) Get(ctx context.Context, key string) (string, bool, error) {
	text, err := c.client.rdb.Get(ctx, contextCachePrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read context cache: %w", err)
	}
	return text, true, nil
}

// Set caches context for key
func (c *ContextCache) Set(ctx context.Context, key, text string, ttl time.Duration) error {
	return c.client.rdb.Set(ctx, contextCachePrefix+key, text, ttl).Err()
}

// Invalidate removes every cached context
func (c *ContextCache) Invalidate(ctx context.Context) error {
	var cursor uint64

	for {
		keys, nextCursor, err := c.client.rdb.Scan(ctx, cursor, contextCachePrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete keys: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			return nil
		}
	}
}
