package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"auction-ledger/internal/core/domain"

	"github.com/redis/go-redis/v9"
)

const headCacheKey = "ledger:head"

// HeadCache implements ports.HeadCache. It is strictly best-effort: the
// database remains the source of truth and a cold or unreachable cache only
// costs a store read.
type HeadCache struct {
	client *redis.Client
}

// NewHeadCache creates a new HeadCache.
func NewHeadCache(client *redis.Client) *HeadCache {
	return &HeadCache{client: client}
}

// Get returns the cached chain head, nil on a miss.
func (c *HeadCache) Get(ctx context.Context) (*domain.LedgerBlock, error) {
	data, err := c.client.Get(ctx, headCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading head cache: %w", err)
	}

	var block domain.LedgerBlock
	if err := json.Unmarshal(data, &block); err != nil {
		return nil, fmt.Errorf("decoding cached head: %w", err)
	}
	return &block, nil
}

// Set stores the chain head with a TTL.
func (c *HeadCache) Set(ctx context.Context, block *domain.LedgerBlock, ttl time.Duration) error {
	data, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("encoding head: %w", err)
	}
	if err := c.client.Set(ctx, headCacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("writing head cache: %w", err)
	}
	return nil
}
