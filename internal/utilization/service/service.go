// Package service implements the payment-gated flight utilization cache.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tailscan/internal/entitlement"
	"tailscan/internal/seed"
	"tailscan/internal/tailnumber"
	"tailscan/internal/utilization/metrics"
	"tailscan/internal/utilization/models"
	dErrors "tailscan/pkg/domain-errors"
	audit "tailscan/pkg/platform/audit"
	"tailscan/pkg/platform/middleware/device"
	"tailscan/pkg/platform/sentinel"
	"tailscan/pkg/requestcontext"
)

const (
	DefaultTTL             = 7 * 24 * time.Hour
	defaultProviderTimeout = 8 * time.Second
)

// ErrPaymentRequired is returned to unpaid callers.
var ErrPaymentRequired = dErrors.New(dErrors.CodePaymentRequired, "payment required")

// Cache persists one entry per tail number.
type Cache interface {
	Get(ctx context.Context, tail string) (*models.CacheEntry, error)
	Upsert(ctx context.Context, entry *models.CacheEntry) error
}

// FlightProvider is the external flight-data collaborator.
type FlightProvider interface {
	Flights(ctx context.Context, tail string) (*models.FlightReport, error)
}

type Service struct {
	cache           Cache
	provider        FlightProvider
	logger          *slog.Logger
	metrics         *metrics.Metrics
	auditor         audit.Emitter
	ttl             time.Duration
	providerTimeout time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditor(a audit.Emitter) Option {
	return func(s *Service) { s.auditor = a }
}

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithProviderTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.providerTimeout = d
		}
	}
}

func New(cache Cache, provider FlightProvider, opts ...Option) (*Service, error) {
	if cache == nil {
		return nil, errors.New("utilization cache is required")
	}
	if provider == nil {
		return nil, errors.New("flight provider is required")
	}
	s := &Service{
		cache:           cache,
		provider:        provider,
		logger:          slog.Default(),
		ttl:             DefaultTTL,
		providerTimeout: defaultProviderTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get gates access by entitlement, then serves a fresh cache entry or refills
// the cache from the provider. Provider failures never surface; a seeded
// entry tagged simulated is stored instead.
func (s *Service) Get(ctx context.Context, rawTail string, ent entitlement.Entitlement) (*models.Result, error) {
	tail, err := tailnumber.Normalize(rawTail)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid tail number")
	}
	ent = ent.For(tail)

	if !ent.Paid() {
		s.metrics.IncrementLookup("payment_required")
		s.emit(ctx, audit.EventUtilizationDenied, tail, ent, "payment required")
		return nil, ErrPaymentRequired
	}
	if ent.Plan != entitlement.PlanFull {
		s.metrics.IncrementLookup("locked")
		s.emit(ctx, audit.EventUtilizationLocked, tail, ent, string(ent.Plan))
		return &models.Result{Status: models.StatusLocked, Message: models.LockedMessage}, nil
	}

	now := requestcontext.Now(ctx)
	entry, err := s.cache.Get(ctx, tail)
	switch {
	case err == nil && entry.Fresh(now):
		s.metrics.IncrementLookup("hit")
		s.emit(ctx, audit.EventUtilizationServed, tail, ent, "cache_hit")
		return &models.Result{Status: models.StatusAvailable, CacheHit: true, Entry: entry}, nil
	case err != nil && !errors.Is(err, sentinel.ErrNotFound):
		s.logger.WarnContext(ctx, "utilization cache read failed",
			"request_id", requestcontext.RequestID(ctx),
			"tail_number", tail,
			"error", err,
		)
	}
	s.metrics.IncrementLookup("miss")

	entry = s.refill(ctx, tail, now)
	if err := s.cache.Upsert(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "utilization cache write failed",
			"request_id", requestcontext.RequestID(ctx),
			"tail_number", tail,
			"error", err,
		)
	}
	s.emit(ctx, audit.EventUtilizationServed, tail, ent, string(entry.Source))
	return &models.Result{Status: models.StatusAvailable, Entry: entry}, nil
}

func (s *Service) refill(ctx context.Context, tail string, now time.Time) *models.CacheEntry {
	callCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	start := time.Now()
	report, err := s.provider.Flights(callCtx, tail)
	s.metrics.ObserveProviderLatency(time.Since(start).Seconds())

	if err != nil {
		s.logger.WarnContext(ctx, "flight data unavailable, storing simulated utilization",
			"request_id", requestcontext.RequestID(ctx),
			"tail_number", tail,
			"error", err,
		)
		s.metrics.IncrementFallback()
		return Simulated(tail, now, s.ttl)
	}

	entry := &models.CacheEntry{
		TailNumber:    tail,
		TotalHours12M: report.TotalHours12M,
		LastTracked:   report.LastTracked,
		Feed:          report.Feed,
		Source:        models.SourceVerifiedLive,
		Raw:           models.RawFlights{Flights: report.Flights},
		ExpiresAt:     now.Add(s.ttl),
		LastUpdated:   now,
	}
	if len(report.Flights) == 0 {
		entry.Source = models.SourceVerifiedEmpty
		entry.Raw.Flights = []models.Flight{}
	}
	if entry.Feed == "" {
		entry.Feed = models.FeedADSB
	}
	return entry
}

// Simulated builds the seeded entry stored when the provider cannot answer.
// The same tail and write time always produce the same entry.
func Simulated(tail string, now time.Time, ttl time.Duration) *models.CacheEntry {
	feed := models.FeedMLAT
	if seed.UnitInterval(tail, seed.OffsetTrackingQuality) > 0.3 {
		feed = models.FeedADSB
	}
	return &models.CacheEntry{
		TailNumber:    tail,
		TotalHours12M: 50 + seed.Intn(tail, seed.OffsetUtilizationHrs, 300),
		LastTracked:   now.Add(-time.Duration(seed.Intn(tail, seed.OffsetLastTracked, 120)) * time.Hour),
		Feed:          feed,
		Source:        models.SourceSimulated,
		Raw:           models.RawFlights{Flights: []models.Flight{}},
		ExpiresAt:     now.Add(ttl),
		LastUpdated:   now,
	}
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, tail string, ent entitlement.Entitlement, outcome string) {
	if s.auditor == nil {
		return
	}
	event := audit.Event{
		Action:        string(action),
		TailNumber:    tail,
		Outcome:       outcome,
		PaymentStatus: string(ent.PaymentStatus),
		Plan:          string(ent.Plan),
		ClientIP:      requestcontext.ClientIP(ctx),
		Client:        device.Client(ctx),
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit utilization audit event",
			"request_id", requestcontext.RequestID(ctx),
			"tail_number", tail,
			"error", err,
		)
	}
}
