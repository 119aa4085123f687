// Package service assembles forensic reports from the resolver, the
// aggregator and the pure scoring, valuation and advisory stages.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tailscan/internal/advisory"
	"tailscan/internal/entitlement"
	fmodels "tailscan/internal/forensics/models"
	"tailscan/internal/provenance"
	regmodels "tailscan/internal/registry/models"
	"tailscan/internal/report/metrics"
	"tailscan/internal/report/models"
	"tailscan/internal/scoring"
	"tailscan/internal/tailnumber"
	umodels "tailscan/internal/utilization/models"
	"tailscan/internal/valuation"
	dErrors "tailscan/pkg/domain-errors"
	audit "tailscan/pkg/platform/audit"
	"tailscan/pkg/platform/middleware/device"
	"tailscan/pkg/requestcontext"
)

// Resolver resolves a canonical tail number to an identity.
type Resolver interface {
	Resolve(ctx context.Context, tail string) (*regmodels.AircraftIdentity, error)
	Suggest(ctx context.Context, partial string) []regmodels.Suggestion
}

// Aggregator collects forensic facts. It never fails; broken sources are
// reported as zero records.
type Aggregator interface {
	Aggregate(ctx context.Context, tail string) *fmodels.Facts
}

// Utilization is the payment-gated flight utilization cache.
type Utilization interface {
	Get(ctx context.Context, tail string, ent entitlement.Entitlement) (*umodels.Result, error)
}

type Service struct {
	resolver    Resolver
	aggregator  Aggregator
	utilization Utilization
	auditor     audit.Emitter
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
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

// WithUtilization attaches the utilization cache. Without it reports never
// carry a utilization section.
func WithUtilization(u Utilization) Option {
	return func(s *Service) { s.utilization = u }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

func New(resolver Resolver, aggregator Aggregator, opts ...Option) (*Service, error) {
	if resolver == nil {
		return nil, errors.New("resolver is required")
	}
	if aggregator == nil {
		return nil, errors.New("aggregator is required")
	}
	s := &Service{
		resolver:   resolver,
		aggregator: aggregator,
		logger:     slog.Default(),
		tracer:     otel.Tracer("tailscan/internal/report"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Scan produces a report for raw input. Only a failed identity resolution
// fails the scan.
func (s *Service) Scan(ctx context.Context, raw string, ent entitlement.Entitlement) (*models.Report, error) {
	ctx, span := s.tracer.Start(ctx, "report.Scan")
	defer span.End()
	start := time.Now()

	tail, err := tailnumber.Normalize(raw)
	if err != nil {
		s.metrics.IncrementScan("invalid")
		span.SetStatus(codes.Error, "invalid tail number")
		return nil, err
	}
	span.SetAttributes(attribute.String("tail_number", tail))
	ent = ent.For(tail)

	identity, err := s.resolve(ctx, tail)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolution failed")
		if dErrors.Is(err, dErrors.CodeNotFound) {
			s.metrics.IncrementScan("not_found")
			s.emit(ctx, audit.Event{
				Action:     string(audit.EventScanNotFound),
				TailNumber: tail,
				Reason:     "no registry or live discovery match",
			}, ent)
		} else {
			s.metrics.IncrementScan("error")
		}
		return nil, err
	}

	facts := s.aggregate(ctx, tail)
	now := requestcontext.Now(ctx)

	result := scoring.Score(facts)
	risk := advisory.Advise(facts, identity, now)
	report := &models.Report{
		ScanID:          uuid.NewString(),
		TailNumber:      tail,
		GeneratedAt:     now,
		Identity:        identity,
		ConfidenceScore: result.Score,
		AuditFindings:   result.Findings,
		Ownership: models.Ownership{
			OwnerCount: result.OwnerCount,
			Provenance: provenance.Simulated,
		},
		Valuation:    valuation.Value(identity, now),
		RiskAdvisory: risk,
		ForensicCounts: models.ForensicCounts{
			Accidents:   len(facts.Accidents),
			Occurrences: facts.ScoredOccurrences(),
			Defects:     len(facts.Defects),
			ActiveLien:  facts.Lien,
			Provenance:  provenance.Observed,
		},
		Access: models.Access{PaymentStatus: ent.PaymentStatus, Plan: ent.Plan},
	}
	if ent.Paid() {
		report.SourceRecords = sourceRecords(facts)
		report.Utilization = s.attachUtilization(ctx, tail, ent)
	}

	span.SetAttributes(
		attribute.Int("confidence_score", report.ConfidenceScore),
		attribute.String("risk_tier", string(risk.Tier)),
	)
	s.metrics.IncrementScan("completed")
	s.metrics.ObserveScan(time.Since(start).Seconds(), report.ConfidenceScore)
	s.emit(ctx, audit.Event{
		Action:     string(audit.EventScanCompleted),
		TailNumber: tail,
		ScanID:     report.ScanID,
		Outcome:    string(risk.Tier),
	}, ent)
	return report, nil
}

// Suggest proxies registry prefix suggestions.
func (s *Service) Suggest(ctx context.Context, partial string) []regmodels.Suggestion {
	return s.resolver.Suggest(ctx, partial)
}

func (s *Service) resolve(ctx context.Context, tail string) (*regmodels.AircraftIdentity, error) {
	ctx, span := s.tracer.Start(ctx, "registry.Resolve")
	defer span.End()
	identity, err := s.resolver.Resolve(ctx, tail)
	if err == nil {
		span.SetAttributes(attribute.String("identity_source", string(identity.Source)))
	}
	return identity, err
}

func (s *Service) aggregate(ctx context.Context, tail string) *fmodels.Facts {
	ctx, span := s.tracer.Start(ctx, "forensics.Aggregate")
	defer span.End()
	facts := s.aggregator.Aggregate(ctx, tail)
	if len(facts.Failed) > 0 {
		failed := make([]string, len(facts.Failed))
		for i, src := range facts.Failed {
			failed[i] = string(src)
		}
		span.SetAttributes(attribute.StringSlice("failed_sources", failed))
	}
	return facts
}

// attachUtilization never fails the scan; errors drop the section.
func (s *Service) attachUtilization(ctx context.Context, tail string, ent entitlement.Entitlement) *umodels.Result {
	if s.utilization == nil {
		return nil
	}
	ctx, span := s.tracer.Start(ctx, "utilization.Get")
	defer span.End()
	res, err := s.utilization.Get(ctx, tail, ent)
	if err != nil {
		span.RecordError(err)
		s.logger.WarnContext(ctx, "utilization omitted from report",
			"request_id", requestcontext.RequestID(ctx),
			"tail_number", tail,
			"error", err,
		)
		return nil
	}
	return res
}

func sourceRecords(facts *fmodels.Facts) *models.SourceRecords {
	out := &models.SourceRecords{
		Accidents:   append([]fmodels.AccidentRecord{}, facts.Accidents...),
		Occurrences: []fmodels.OccurrenceRecord{},
		Defects:     append([]fmodels.DefectRecord{}, facts.Defects...),
	}
	if facts.OccurrencesApply() {
		out.Occurrences = append(out.Occurrences, facts.Occurrences...)
	}
	return out
}

// emit is fire-and-forget: audit failures are logged and never fail a scan.
func (s *Service) emit(ctx context.Context, event audit.Event, ent entitlement.Entitlement) {
	if s.auditor == nil {
		return
	}
	event.PaymentStatus = string(ent.PaymentStatus)
	event.Plan = string(ent.Plan)
	event.ClientIP = requestcontext.ClientIP(ctx)
	event.Client = device.Client(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit scan audit event",
			"request_id", requestcontext.RequestID(ctx),
			"tail_number", event.TailNumber,
			"action", event.Action,
			"error", err,
		)
	}
}
