// Package service resolves canonical tail numbers to aircraft identities
// through a tiered chain: registry store, then the jurisdiction's live
// discovery collaborator, then not-found.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tailscan/internal/registry/metrics"
	"tailscan/internal/registry/models"
	"tailscan/internal/registry/providers"
	"tailscan/internal/tailnumber"
	dErrors "tailscan/pkg/domain-errors"
	"tailscan/pkg/platform/sentinel"
	"tailscan/pkg/requestcontext"
)

const (
	defaultDiscoveryTimeout = 5 * time.Second
	suggestionLimit         = 8
	minSuggestLength        = 2
)

// Store is the persisted registry.
type Store interface {
	FindByKey(ctx context.Context, key string) (*models.RegistryRecord, error)
	UpsertDiscovered(ctx context.Context, record *models.RegistryRecord) error
	Suggest(ctx context.Context, prefix string, limit int) ([]models.Suggestion, error)
}

// NotFoundError reports that every resolution tier missed.
type NotFoundError struct {
	TailNumber string
}

var errAircraftNotFound = dErrors.New(dErrors.CodeNotFound, "aircraft not found")

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("aircraft %s not found in any registry", e.TailNumber)
}

func (e *NotFoundError) Unwrap() error { return errAircraftNotFound }

// Service is the registry resolver.
type Service struct {
	store            Store
	discovery        *providers.Registry
	logger           *slog.Logger
	metrics          *metrics.Metrics
	discoveryTimeout time.Duration
	allowEstimated   bool
}

// Option configures the resolver.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithDiscoveryTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.discoveryTimeout = d
		}
	}
}

// WithAllowEstimated lets unverified discovery candidates through, tagged
// as estimates. They are never persisted.
func WithAllowEstimated(allow bool) Option {
	return func(s *Service) { s.allowEstimated = allow }
}

// New creates a resolver. A nil discovery registry disables tier two.
func New(store Store, discovery *providers.Registry, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("registry store is required")
	}
	s := &Service{
		store:            store,
		discovery:        discovery,
		logger:           slog.Default(),
		discoveryTimeout: defaultDiscoveryTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Resolve returns the identity for a canonical tail number, or a
// *NotFoundError when neither tier knows it.
func (s *Service) Resolve(ctx context.Context, tail string) (*models.AircraftIdentity, error) {
	country := tailnumber.CountryOf(tail)
	if country == tailnumber.CountryUnknown {
		return nil, tailnumber.ErrInvalid
	}

	record, storeErr := s.store.FindByKey(ctx, tailnumber.LookupKey(tail))
	if storeErr == nil {
		s.metrics.IncrementResolution(string(models.SourceRegistry))
		return toIdentity(tail, country, record, models.SourceRegistry, models.VerificationVerified), nil
	}
	if !errors.Is(storeErr, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "registry store lookup failed",
			"tail_number", tail,
			"request_id", requestcontext.RequestID(ctx),
			"error", storeErr,
		)
	}

	identity := s.discover(ctx, tail, country)
	if identity != nil {
		s.metrics.IncrementResolution(string(models.SourceLiveDiscovery))
		return identity, nil
	}

	if storeErr != nil && !errors.Is(storeErr, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(storeErr, dErrors.CodeUnavailable, "registry temporarily unavailable")
	}
	s.metrics.IncrementResolution("not_found")
	return nil, &NotFoundError{TailNumber: tail}
}

// discover consults the jurisdiction's live collaborator. Every failure mode
// is a miss.
func (s *Service) discover(ctx context.Context, tail string, country tailnumber.Country) *models.AircraftIdentity {
	provider, ok := s.discovery.For(country)
	if !ok {
		return nil
	}

	dctx, cancel := context.WithTimeout(ctx, s.discoveryTimeout)
	defer cancel()

	res, err := provider.Discover(dctx, tail)
	if err != nil {
		s.metrics.IncrementDiscovery(provider.ID(), string(providers.GetCategory(err)))
		s.logger.WarnContext(ctx, "live discovery failed",
			"tail_number", tail,
			"provider", provider.ID(),
			"retryable", providers.IsRetryable(err),
			"error", err,
		)
		return nil
	}
	if res == nil || !res.Found || res.Record == nil {
		s.metrics.IncrementDiscovery(provider.ID(), "not_found")
		return nil
	}

	verification := models.ParseVerification(res.VerificationStatus)
	if verification != models.VerificationVerified && !s.allowEstimated {
		s.metrics.IncrementDiscovery(provider.ID(), "rejected_estimate")
		s.logger.InfoContext(ctx, "discarded unverified discovery candidate",
			"tail_number", tail,
			"provider", provider.ID(),
			"verification_status", res.VerificationStatus,
		)
		return nil
	}
	s.metrics.IncrementDiscovery(provider.ID(), "found")

	record := *res.Record
	record.NNumber = tailnumber.LookupKey(tail)
	record.Country = country
	if verification == models.VerificationVerified {
		if err := s.store.UpsertDiscovered(ctx, &record); err != nil {
			s.logger.WarnContext(ctx, "failed to persist discovered aircraft",
				"tail_number", tail,
				"error", err,
			)
		}
	}
	return toIdentity(tail, country, &record, models.SourceLiveDiscovery, verification)
}

// Suggest returns registry marks starting with the partial input. Lookup
// errors degrade to an empty list.
func (s *Service) Suggest(ctx context.Context, partial string) []models.Suggestion {
	prefix := tailnumber.SuggestPrefix(partial)
	if len(prefix) < minSuggestLength {
		return []models.Suggestion{}
	}
	out, err := s.store.Suggest(ctx, prefix, suggestionLimit)
	if err != nil {
		s.logger.WarnContext(ctx, "registry suggestion lookup failed", "prefix", prefix, "error", err)
		return []models.Suggestion{}
	}
	if out == nil {
		out = []models.Suggestion{}
	}
	return out
}

func toIdentity(tail string, country tailnumber.Country, r *models.RegistryRecord, source models.Source, v models.Verification) *models.AircraftIdentity {
	brand, brandOK := normalizeBrand(r.Manufacturer)
	model, modelOK := normalizeModel(r.Model)
	return &models.AircraftIdentity{
		TailNumber:       tail,
		Manufacturer:     brand,
		Model:            model,
		SerialNumber:     r.SerialNumber,
		YearManufactured: r.YearManufactured,
		OwnerName:        r.OwnerName,
		City:             r.City,
		Region:           r.Region,
		Country:          country,
		BrandResolved:    brandOK && modelOK,
		Source:           source,
		Verification:     v,
	}
}
