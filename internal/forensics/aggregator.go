// Package forensics gathers accident, occurrence, defect and lien facts for
// an aircraft. Each source is fetched independently; a failing source
// contributes nothing and never aborts the others.
package forensics

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tailscan/internal/forensics/metrics"
	"tailscan/internal/forensics/models"
	"tailscan/internal/tailnumber"
	"tailscan/pkg/requestcontext"
)

const defaultSourceTimeout = 3 * time.Second

type AccidentStore interface {
	ListAccidents(ctx context.Context, keys []string) ([]models.AccidentRecord, error)
}

type OccurrenceStore interface {
	ListOccurrences(ctx context.Context, keys []string) ([]models.OccurrenceRecord, error)
}

type DefectStore interface {
	ListDefects(ctx context.Context, keys []string) ([]models.DefectRecord, error)
}

type LienStore interface {
	HasActiveLien(ctx context.Context, keys []string) (bool, error)
}

// Aggregator fans out to the forensic stores.
type Aggregator struct {
	accidents   AccidentStore
	occurrences OccurrenceStore
	defects     DefectStore
	liens       LienStore
	logger      *slog.Logger
	metrics     *metrics.Metrics
	timeout     time.Duration
}

type Option func(*Aggregator)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) { a.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) { a.metrics = m }
}

func WithSourceTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// New creates an aggregator over the four forensic sources.
func New(accidents AccidentStore, occurrences OccurrenceStore, defects DefectStore, liens LienStore, opts ...Option) (*Aggregator, error) {
	switch {
	case accidents == nil:
		return nil, errors.New("accident store is required")
	case occurrences == nil:
		return nil, errors.New("occurrence store is required")
	case defects == nil:
		return nil, errors.New("defect store is required")
	case liens == nil:
		return nil, errors.New("lien store is required")
	}
	a := &Aggregator{
		accidents:   accidents,
		occurrences: occurrences,
		defects:     defects,
		liens:       liens,
		logger:      slog.Default(),
		timeout:     defaultSourceTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Keys returns the store keys a canonical mark may be filed under: the mark
// itself and, for US marks, the variant without "N".
func Keys(tail string) []string {
	if key := tailnumber.LookupKey(tail); key != tail {
		return []string{tail, key}
	}
	return []string{tail}
}

// Aggregate collects all facts for tail. It never returns an error; sources
// that fail are listed in Facts.Failed.
func (a *Aggregator) Aggregate(ctx context.Context, tail string) *models.Facts {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	facts := &models.Facts{
		TailNumber: tail,
		Country:    tailnumber.CountryOf(tail),
		FetchedAt:  requestcontext.Now(ctx),
	}
	keys := Keys(tail)

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	fetch := func(src models.Source, fn func() error) {
		g.Go(func() error {
			start := time.Now()
			err := fn()
			a.metrics.ObserveSourceLatency(string(src), time.Since(start))
			if err != nil {
				a.metrics.IncrementFailure(string(src))
				a.logger.WarnContext(ctx, "forensic source failed",
					"tail_number", tail,
					"source", src,
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				mu.Lock()
				facts.Failed = append(facts.Failed, src)
				mu.Unlock()
			}
			// partial failure is tolerated
			return nil
		})
	}

	fetch(models.SourceAccidents, func() error {
		records, err := a.accidents.ListAccidents(ctx, keys)
		if err == nil {
			facts.Accidents = uniqueBy(records, func(r models.AccidentRecord) string { return r.EventID })
		}
		return err
	})
	fetch(models.SourceOccurrences, func() error {
		records, err := a.occurrences.ListOccurrences(ctx, keys)
		if err == nil {
			facts.Occurrences = uniqueBy(records, func(r models.OccurrenceRecord) string { return r.CadorsNumber })
		}
		return err
	})
	fetch(models.SourceDefects, func() error {
		records, err := a.defects.ListDefects(ctx, keys)
		if err == nil {
			facts.Defects = uniqueBy(records, func(r models.DefectRecord) string { return r.ControlNumber })
		}
		return err
	})
	fetch(models.SourceLiens, func() error {
		lien, err := a.liens.HasActiveLien(ctx, keys)
		if err == nil {
			facts.Lien = lien
		}
		return err
	})

	_ = g.Wait()
	slices.Sort(facts.Failed)
	return facts
}

// uniqueBy drops records whose source identifier was already seen. A US
// record filed under both key spellings comes back once per spelling.
func uniqueBy[T any](records []T, id func(T) string) []T {
	if len(records) < 2 {
		return records
	}
	seen := make(map[string]struct{}, len(records))
	out := records[:0:0]
	for _, r := range records {
		key := id(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
