package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"tailscan/internal/registry/models"
	"tailscan/pkg/platform/sentinel"
)

// InMemoryStore is a registry store backed by a map, keyed by lookup key.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.RegistryRecord
}

// NewInMemoryStore creates a store pre-loaded with the given records.
func NewInMemoryStore(seed ...models.RegistryRecord) *InMemoryStore {
	s := &InMemoryStore{records: make(map[string]models.RegistryRecord, len(seed))}
	for _, r := range seed {
		s.records[r.NNumber] = r
	}
	return s
}

// FindByKey returns sentinel.ErrNotFound when no record is stored under key.
func (s *InMemoryStore) FindByKey(_ context.Context, key string) (*models.RegistryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &r, nil
}

// UpsertDiscovered inserts a discovered record. An existing record only has
// its owner and location fields overwritten.
func (s *InMemoryStore) UpsertDiscovered(_ context.Context, record *models.RegistryRecord) error {
	if record == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.records[record.NNumber]
	if !ok {
		s.records[record.NNumber] = *record
		return nil
	}
	existing.OwnerName = record.OwnerName
	existing.City = record.City
	existing.Region = record.Region
	existing.UpdatedAt = record.UpdatedAt
	s.records[record.NNumber] = existing
	return nil
}

// Suggest returns up to limit records whose display mark starts with prefix.
func (s *InMemoryStore) Suggest(_ context.Context, prefix string, limit int) ([]models.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Suggestion, 0, limit)
	for _, r := range s.records {
		mark := displayMark(r)
		if strings.HasPrefix(mark, prefix) {
			out = append(out, models.Suggestion{TailNumber: mark, OwnerName: r.OwnerName, Manufacturer: r.Manufacturer})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TailNumber < out[j].TailNumber })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// displayMark restores the "N" that US lookup keys are stored without.
func displayMark(r models.RegistryRecord) string {
	if strings.HasPrefix(r.NNumber, "C-") {
		return r.NNumber
	}
	return "N" + r.NNumber
}
