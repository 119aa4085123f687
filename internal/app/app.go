// Package app wires stores, collaborators and services from configuration.
// Both the HTTP server and the CLI build on it.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"tailscan/internal/entitlement"
	"tailscan/internal/fixtures"
	"tailscan/internal/forensics"
	fmetrics "tailscan/internal/forensics/metrics"
	fstore "tailscan/internal/forensics/store"
	"tailscan/internal/platform/config"
	platformkafka "tailscan/internal/platform/kafka"
	"tailscan/internal/platform/postgres"
	rlmetrics "tailscan/internal/ratelimit/metrics"
	rlmiddleware "tailscan/internal/ratelimit/middleware"
	rlmodels "tailscan/internal/ratelimit/models"
	rlstore "tailscan/internal/ratelimit/store"
	platformredis "tailscan/internal/platform/redis"
	rmetrics "tailscan/internal/registry/metrics"
	"tailscan/internal/registry/providers"
	regservice "tailscan/internal/registry/service"
	regstore "tailscan/internal/registry/store"
	repmetrics "tailscan/internal/report/metrics"
	repservice "tailscan/internal/report/service"
	"tailscan/internal/tailnumber"
	"tailscan/internal/utilization/flightdata"
	umetrics "tailscan/internal/utilization/metrics"
	uservice "tailscan/internal/utilization/service"
	ustore "tailscan/internal/utilization/store"
	audit "tailscan/pkg/platform/audit"
	"tailscan/pkg/platform/audit/publisher"
	kafkasink "tailscan/pkg/platform/audit/publishers/kafka"
	"tailscan/pkg/platform/audit/publishers/logsink"
	auditpg "tailscan/pkg/platform/audit/store/postgres"
	"tailscan/pkg/platform/circuit"
)

// App holds the wired services and the resources they own.
type App struct {
	Reports     *repservice.Service
	Utilization *uservice.Service
	Tokens      *entitlement.TokenService
	RateLimiter *rlmiddleware.Middleware
	DB          *sql.DB
	Redis       *platformredis.Client

	kafka     *kgo.Client
	publisher *publisher.Publisher
}

// Build connects to every configured backend. Without DATABASE_URL the
// in-memory stores are used and seeded with the demo fixtures.
func Build(ctx context.Context, cfg config.Server, logger *slog.Logger) (*App, error) {
	a := &App{
		Tokens: entitlement.NewTokenService(cfg.Entitlement.SigningKey, cfg.Entitlement.Issuer, cfg.Entitlement.Audience),
	}

	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.DB = db
		if err := postgres.Migrate(ctx, db, logger); err != nil {
			a.Close()
			return nil, err
		}
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Redis = redisClient

	auditStore, err := a.auditStore(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.publisher = publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(1024),
		publisher.WithLogger(logger),
		publisher.WithMetrics(publisher.NewMetrics()),
	)

	resolver, err := a.resolver(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	aggregator, err := a.aggregator(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	cache, err := a.utilizationCache(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	var provider uservice.FlightProvider = flightdata.Disabled{}
	if cfg.FlightData.URL != "" {
		provider = flightdata.New(cfg.FlightData.URL, cfg.FlightData.APIKey, cfg.FlightData.Timeout,
			flightdata.WithBreaker(circuit.New("flightdata")))
	}
	a.Utilization, err = uservice.New(cache, provider,
		uservice.WithLogger(logger),
		uservice.WithMetrics(umetrics.New()),
		uservice.WithAuditor(a.publisher),
		uservice.WithTTL(cfg.Utilization.CacheTTL),
		uservice.WithProviderTimeout(cfg.FlightData.Timeout),
	)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.RateLimiter, err = a.rateLimiter(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Reports, err = repservice.New(resolver, aggregator,
		repservice.WithLogger(logger),
		repservice.WithMetrics(repmetrics.New()),
		repservice.WithAuditor(a.publisher),
		repservice.WithUtilization(a.Utilization),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) resolver(cfg config.Server, logger *slog.Logger) (*regservice.Service, error) {
	m := rmetrics.New()
	var store regservice.Store
	if a.DB != nil {
		store = regstore.NewPostgresStore(a.DB, m)
	} else {
		store = regstore.NewInMemoryStore(fixtures.Registry()...)
	}

	discovery := providers.NewRegistry()
	for _, p := range []providers.Discovery{
		discoveryFor("faa-live", tailnumber.CountryUS, cfg.Discovery.FAAURL, cfg.Discovery.APIKey),
		discoveryFor("tc-live", tailnumber.CountryCA, cfg.Discovery.TCURL, cfg.Discovery.APIKey),
	} {
		if err := discovery.Register(p); err != nil {
			return nil, fmt.Errorf("register discovery: %w", err)
		}
	}

	return regservice.New(store, discovery,
		regservice.WithLogger(logger),
		regservice.WithMetrics(m),
		regservice.WithDiscoveryTimeout(cfg.Discovery.Timeout),
		regservice.WithAllowEstimated(cfg.Discovery.AllowEstimated),
	)
}

// discoveryFor returns the live collaborator for a jurisdiction, or a
// provider that never finds anything when none is configured.
func discoveryFor(id string, country tailnumber.Country, url, apiKey string) providers.Discovery {
	if url == "" {
		return providers.NewStrict(country)
	}
	return providers.NewHTTPDiscovery(id, country, url,
		providers.WithAPIKey(apiKey),
		providers.WithBreaker(circuit.New(id)),
	)
}

func (a *App) aggregator(cfg config.Server, logger *slog.Logger) (*forensics.Aggregator, error) {
	opts := []forensics.Option{
		forensics.WithLogger(logger),
		forensics.WithMetrics(fmetrics.New()),
		forensics.WithSourceTimeout(cfg.Forensics.SourceTimeout),
	}
	if a.DB != nil {
		s := fstore.NewPostgresStore(a.DB)
		return forensics.New(s, s, s, s, opts...)
	}
	s := fstore.NewInMemoryStore()
	fixtures.LoadForensics(s)
	return forensics.New(s, s, s, s, opts...)
}

func (a *App) utilizationCache(cfg config.Server) (uservice.Cache, error) {
	switch cfg.Utilization.Backend {
	case "redis":
		if a.Redis == nil {
			return nil, fmt.Errorf("utilization backend redis requires REDIS_URL")
		}
		return ustore.NewRedisCache(a.Redis.Client), nil
	case "postgres":
		if a.DB != nil {
			return ustore.NewPostgresCache(a.DB), nil
		}
		return ustore.NewInMemoryCache(), nil
	case "memory":
		return ustore.NewInMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unknown utilization backend %q", cfg.Utilization.Backend)
	}
}

func (a *App) rateLimiter(cfg config.Server, logger *slog.Logger) (*rlmiddleware.Middleware, error) {
	var store rlmiddleware.Store
	switch cfg.RateLimit.Backend {
	case "redis":
		if a.Redis == nil {
			return nil, fmt.Errorf("rate limit backend redis requires REDIS_URL")
		}
		store = rlstore.NewRedisStore(a.Redis.Client)
	case "memory":
		store = rlstore.NewInMemoryStore()
	default:
		return nil, fmt.Errorf("unknown rate limit backend %q", cfg.RateLimit.Backend)
	}
	return rlmiddleware.New(store, logger,
		rlmiddleware.WithLimit(rlmodels.ClassScan, cfg.RateLimit.ScansPerWindow),
		rlmiddleware.WithLimit(rlmodels.ClassRead, cfg.RateLimit.ReadsPerWindow),
		rlmiddleware.WithWindow(cfg.RateLimit.Window),
		rlmiddleware.WithMetrics(rlmetrics.New()),
		rlmiddleware.WithDisabled(cfg.RateLimit.Disabled),
	), nil
}

// auditStore picks Kafka when brokers are configured, then Postgres, then
// the structured log.
func (a *App) auditStore(ctx context.Context, cfg config.Server, logger *slog.Logger) (audit.Store, error) {
	if len(cfg.Kafka.Brokers) > 0 {
		client, err := platformkafka.New(ctx, cfg.Kafka)
		if err != nil {
			return nil, err
		}
		a.kafka = client
		if err := platformkafka.EnsureTopic(ctx, client, cfg.Kafka.AuditTopic, cfg.Kafka.Partitions); err != nil {
			return nil, err
		}
		return kafkasink.New(client, cfg.Kafka.AuditTopic, logger)
	}
	if a.DB != nil {
		return auditpg.New(a.DB), nil
	}
	return logsink.New(logger), nil
}

// Health reports whether the configured backing stores answer.
func (a *App) Health(ctx context.Context) error {
	if a.DB != nil {
		if err := a.DB.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	return a.Redis.Health(ctx)
}

// Close flushes audit events and releases connections.
func (a *App) Close() {
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.kafka != nil {
		a.kafka.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
