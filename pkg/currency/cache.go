package currency

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// RateCache stores rate tables keyed by base currency.
type RateCache interface {
	Get(ctx context.Context, base string) (Table, bool, error)
	Set(ctx context.Context, table Table) error
}

// RedisCache keeps msgpack-encoded tables in redis.
type RedisCache struct {
	rds *redis.Redis
	key func(base string) string
	ttl time.Duration
}

// NewRedisCache wires a redis-backed cache. key builds the redis key for a base.
func NewRedisCache(rds *redis.Redis, key func(base string) string, ttl time.Duration) *RedisCache {
	return &RedisCache{rds: rds, key: key, ttl: ttl}
}

// Get implements RateCache. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, base string) (Table, bool, error) {
	raw, err := c.rds.GetCtx(ctx, c.key(NormalizeCode(base)))
	if err != nil {
		return Table{}, false, fmt.Errorf("currency cache get: %w", err)
	}
	if raw == "" {
		return Table{}, false, nil
	}
	var t Table
	if err := msgpack.Unmarshal([]byte(raw), &t); err != nil {
		return Table{}, false, fmt.Errorf("currency cache decode: %w", err)
	}
	return t, true, nil
}

// Set implements RateCache.
func (c *RedisCache) Set(ctx context.Context, table Table) error {
	payload, err := msgpack.Marshal(table)
	if err != nil {
		return fmt.Errorf("currency cache encode: %w", err)
	}
	seconds := int(c.ttl / time.Second)
	if seconds <= 0 {
		seconds = 1
	}
	if err := c.rds.SetexCtx(ctx, c.key(table.Base), string(payload), seconds); err != nil {
		return fmt.Errorf("currency cache set: %w", err)
	}
	return nil
}
