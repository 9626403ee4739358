package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache stores rendered response payloads. A nil *Cache is a valid no-op
// cache, so callers never branch on whether caching is configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr string, ttl time.Duration) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *Cache) Set(ctx context.Context, key string, payload []byte) error {
	if c == nil {
		return nil
	}

	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
