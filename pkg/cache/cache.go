// Package cache provides a small JSON read cache over Redis. A nil *Cache
// is valid and disables caching, so callers never branch on configuration.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache wraps a Redis client for storing JSON-encoded values.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at addr. An empty addr returns a nil Cache, which
// disables caching. Connection failures are logged and also return nil
// rather than failing startup: the cache is an optimization, not a
// dependency.
func New(ctx context.Context, addr string, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis unreachable, caching disabled")
		_ = client.Close()
		return nil
	}
	log.Info().Str("addr", addr).Msg("redis cache connected")
	return &Cache{client: client, ttl: ttl}
}

// GetJSON unmarshals the cached value for key into dest. Returns false on
// a miss, a disabled cache, or any Redis error.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache value corrupt, dropping")
		c.Invalidate(ctx, key)
		return false
	}
	return true
}

// SetJSON stores value under key with the configured TTL. Errors are
// logged and swallowed.
func (c *Cache) SetJSON(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Invalidate removes keys. Used after admin mutations so reads never serve
// stale catalog or banner data.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidate failed")
	}
}

// InvalidatePrefix removes all keys matching prefix*.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if c == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("cache scan failed")
		return
	}
	c.Invalidate(ctx, keys...)
}

// Close releases the underlying client.
func (c *Cache) Close() {
	if c != nil {
		_ = c.client.Close()
	}
}
