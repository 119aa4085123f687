package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"tailscan/internal/utilization/models"
	"tailscan/pkg/platform/sentinel"
)

// InMemoryCache keeps one entry per tail number. Expired entries stay until
// overwritten; freshness is the caller's check.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]models.CacheEntry
}

func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{entries: make(map[string]models.CacheEntry)}
}

func (c *InMemoryCache) Get(_ context.Context, tail string) (*models.CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[tail]
	if !ok {
		return nil, fmt.Errorf("utilization entry %s: %w", tail, sentinel.ErrNotFound)
	}
	entry.Raw.Flights = slices.Clone(entry.Raw.Flights)
	return &entry, nil
}

func (c *InMemoryCache) Upsert(_ context.Context, entry *models.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored := *entry
	stored.Raw.Flights = slices.Clone(entry.Raw.Flights)
	c.entries[entry.TailNumber] = stored
	return nil
}
