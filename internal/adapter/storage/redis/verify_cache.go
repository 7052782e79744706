package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"dataset-billing/internal/core/ports"
)

// VerifyCache implements ports.VerifyCache using Redis. Only terminal
// verification outcomes are cached; balances are never stored here.
type VerifyCache struct {
	client *goredis.Client
	prefix string
}

// NewVerifyCache creates a new Redis-backed verification cache.
func NewVerifyCache(client *goredis.Client) *VerifyCache {
	return &VerifyCache{
		client: client,
		prefix: "verify:",
	}
}

// Get retrieves a cached verification outcome by reference.
// Returns nil, nil if the reference is not cached.
func (c *VerifyCache) Get(ctx context.Context, reference string) (*ports.CachedVerify, error) {
	val, err := c.client.Get(ctx, c.prefix+reference).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis verify get: %w", err)
	}

	var cached ports.CachedVerify
	if err := json.Unmarshal(val, &cached); err != nil {
		return nil, fmt.Errorf("redis verify decode: %w", err)
	}
	return &cached, nil
}

// Set stores a verification outcome with TTL.
func (c *VerifyCache) Set(ctx context.Context, reference string, v *ports.CachedVerify, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("redis verify encode: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+reference, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis verify set: %w", err)
	}
	return nil
}
