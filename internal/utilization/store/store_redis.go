package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tailscan/internal/utilization/models"
	"tailscan/pkg/platform/sentinel"
)

const flightCacheKeyPrefix = "flight_cache:"

// RedisCache stores each entry as JSON under flight_cache:<tail>. Keys carry
// no Redis TTL; expiry is checked on read like the other backends.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, tail string) (*models.CacheEntry, error) {
	raw, err := c.client.Get(ctx, flightCacheKeyPrefix+tail).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("utilization entry %s: %w", tail, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get utilization entry: %w", err)
	}
	var entry models.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode utilization entry: %w", err)
	}
	return &entry, nil
}

func (c *RedisCache) Upsert(ctx context.Context, entry *models.CacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode utilization entry: %w", err)
	}
	if err := c.client.Set(ctx, flightCacheKeyPrefix+entry.TailNumber, raw, 0).Err(); err != nil {
		return fmt.Errorf("set utilization entry: %w", err)
	}
	return nil
}
