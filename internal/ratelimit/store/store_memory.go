package store

import (
	"context"
	"sync"
	"time"

	"tailscan/internal/ratelimit/models"
)

// InMemoryStore is a per-process sliding window limiter. Limits are not
// shared between replicas; use RedisStore for that.
type InMemoryStore struct {
	mu        sync.Mutex
	buckets   map[string]*slidingWindow
	clock     func() time.Time
	nextSweep time.Time
}

type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

// MemoryOption configures an InMemoryStore.
type MemoryOption func(*InMemoryStore)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) MemoryOption {
	return func(s *InMemoryStore) {
		s.clock = clock
	}
}

func NewInMemoryStore(opts ...MemoryOption) *InMemoryStore {
	s := &InMemoryStore{
		buckets: make(map[string]*slidingWindow),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow admits one request for key if fewer than limit were admitted in the
// trailing window.
func (s *InMemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	if !now.Before(s.nextSweep) {
		s.sweep(now)
		s.nextSweep = now.Add(window)
	}
	sw := s.buckets[key]
	if sw == nil {
		sw = &slidingWindow{}
		s.buckets[key] = sw
	}
	sw.window = window
	sw.cleanup(now, window)

	if len(sw.timestamps) >= limit {
		resetAt := now.Add(window)
		if len(sw.timestamps) > 0 {
			resetAt = sw.timestamps[0].Add(window)
		}
		return &models.Result{Allowed: false, Limit: limit, Remaining: 0, ResetAt: resetAt}, nil
	}

	sw.timestamps = append(sw.timestamps, now)
	return &models.Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - len(sw.timestamps),
		ResetAt:   sw.timestamps[0].Add(window),
	}, nil
}

// Reset clears the window for key.
func (s *InMemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}

// sweep drops buckets whose window has emptied. Called with mu held.
func (s *InMemoryStore) sweep(now time.Time) {
	for key, sw := range s.buckets {
		sw.cleanup(now, sw.window)
		if len(sw.timestamps) == 0 {
			delete(s.buckets, key)
		}
	}
}

// Len reports how many client keys are tracked.
func (s *InMemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

func (sw *slidingWindow) cleanup(now time.Time, window time.Duration) {
	cutoff := now.Add(-window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}
