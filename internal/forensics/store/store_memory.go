package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"tailscan/internal/forensics/models"
)

// Lien is one recorded encumbrance. A nil ReleasedAt means it is active.
type Lien struct {
	TailNumber string
	Holder     string
	RecordedAt time.Time
	ReleasedAt *time.Time
}

// InMemoryStore serves all four forensic sources from memory. Records are
// append-only.
type InMemoryStore struct {
	mu          sync.RWMutex
	accidents   []models.AccidentRecord
	occurrences []models.OccurrenceRecord
	defects     []models.DefectRecord
	liens       []Lien
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) AddAccident(r models.AccidentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accidents = append(s.accidents, r)
}

func (s *InMemoryStore) AddOccurrence(r models.OccurrenceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.occurrences = append(s.occurrences, r)
}

func (s *InMemoryStore) AddDefect(r models.DefectRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defects = append(s.defects, r)
}

func (s *InMemoryStore) AddLien(l Lien) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liens = append(s.liens, l)
}

func (s *InMemoryStore) ListAccidents(_ context.Context, keys []string) ([]models.AccidentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.accidents, keys, func(r models.AccidentRecord) string { return r.TailNum }), nil
}

func (s *InMemoryStore) ListOccurrences(_ context.Context, keys []string) ([]models.OccurrenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.occurrences, keys, func(r models.OccurrenceRecord) string { return r.TailNum }), nil
}

func (s *InMemoryStore) ListDefects(_ context.Context, keys []string) ([]models.DefectRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.defects, keys, func(r models.DefectRecord) string { return r.TailNum }), nil
}

func (s *InMemoryStore) HasActiveLien(_ context.Context, keys []string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.liens {
		if l.ReleasedAt == nil && slices.Contains(keys, l.TailNumber) {
			return true, nil
		}
	}
	return false, nil
}

func filter[T any](records []T, keys []string, tail func(T) string) []T {
	out := make([]T, 0)
	for _, r := range records {
		if slices.Contains(keys, tail(r)) {
			out = append(out, r)
		}
	}
	return out
}
