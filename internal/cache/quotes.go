package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/stores/redis"

	"findash-api/pkg/market"
)

// QuoteCache stores quote snapshots in redis.
type QuoteCache struct {
	rds *redis.Redis
	ttl time.Duration
}

func NewQuoteCache(rds *redis.Redis, ttl time.Duration) *QuoteCache {
	return &QuoteCache{rds: rds, ttl: ttl}
}

// Get returns the cached quote, or false on a miss.
func (c *QuoteCache) Get(ctx context.Context, symbol string) (*market.Quote, bool, error) {
	raw, err := c.rds.GetCtx(ctx, QuoteSnapshotKey(symbol))
	if err != nil {
		return nil, false, fmt.Errorf("quote cache get: %w", err)
	}
	if raw == "" {
		return nil, false, nil
	}
	var q market.Quote
	if err := msgpack.Unmarshal([]byte(raw), &q); err != nil {
		return nil, false, fmt.Errorf("quote cache decode: %w", err)
	}
	return &q, true, nil
}

func (c *QuoteCache) Set(ctx context.Context, q *market.Quote) error {
	payload, err := msgpack.Marshal(q)
	if err != nil {
		return fmt.Errorf("quote cache encode: %w", err)
	}
	seconds := int(c.ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return c.rds.SetexCtx(ctx, QuoteSnapshotKey(q.Symbol), string(payload), seconds)
}
