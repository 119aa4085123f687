package config

import (
	"os"
	"strconv"
	"time"

	platformstrings "tailscan/pkg/platform/strings"
)

// Server captures process level configuration.
type Server struct {
	Addr        string
	Environment string
	Database    DatabaseConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Discovery   DiscoveryConfig
	FlightData  FlightDataConfig
	Utilization UtilizationConfig
	Entitlement EntitlementConfig
	Forensics   ForensicsConfig
	RateLimit   RateLimitConfig
}

// DatabaseConfig configures the Postgres pool. An empty URL selects the
// in-memory stores.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the optional Redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures audit streaming. No brokers means audit events go
// to the structured log.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
	Partitions int32
}

// DiscoveryConfig configures the live-discovery collaborators.
type DiscoveryConfig struct {
	FAAURL         string
	TCURL          string
	APIKey         string
	Timeout        time.Duration
	AllowEstimated bool
}

// FlightDataConfig configures the flight-data provider.
type FlightDataConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// UtilizationConfig configures the utilization cache.
type UtilizationConfig struct {
	CacheTTL time.Duration
	// Backend is one of postgres, redis or memory.
	Backend string
}

// RateLimitConfig caps requests per client IP. Scans are limited
// separately from cheaper reads.
type RateLimitConfig struct {
	Disabled       bool
	ScansPerWindow int
	ReadsPerWindow int
	Window         time.Duration
	// Backend is redis or memory.
	Backend string
}

// EntitlementConfig configures token verification.
type EntitlementConfig struct {
	SigningKey string
	Issuer     string
	Audience   string
}

// ForensicsConfig bounds each forensic source query.
type ForensicsConfig struct {
	SourceTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	signingKey := os.Getenv("ENTITLEMENT_SIGNING_KEY")
	if signingKey == "" {
		// Use a default for development - should be overridden in production
		signingKey = "dev-entitlement-key-change-in-production"
	}

	return Server{
		Addr:        envOr("TAILSCAN_ADDR", ":8080"),
		Environment: envOr("APP_ENV", "production"),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:    envList("KAFKA_BROKERS"),
			AuditTopic: envOr("KAFKA_AUDIT_TOPIC", "tailscan.audit"),
			Partitions: int32(envInt("KAFKA_AUDIT_PARTITIONS", 3)),
		},
		Discovery: DiscoveryConfig{
			FAAURL:         os.Getenv("FAA_DISCOVERY_URL"),
			TCURL:          os.Getenv("TC_DISCOVERY_URL"),
			APIKey:         os.Getenv("DISCOVERY_API_KEY"),
			Timeout:        envDuration("DISCOVERY_TIMEOUT", 5*time.Second),
			AllowEstimated: os.Getenv("DISCOVERY_ALLOW_ESTIMATED") == "true",
		},
		FlightData: FlightDataConfig{
			URL:     os.Getenv("FLIGHTDATA_URL"),
			APIKey:  os.Getenv("FLIGHTDATA_API_KEY"),
			Timeout: envDuration("FLIGHTDATA_TIMEOUT", 8*time.Second),
		},
		Utilization: UtilizationConfig{
			CacheTTL: envDuration("UTILIZATION_CACHE_TTL", 168*time.Hour),
			Backend:  envOr("UTILIZATION_CACHE_BACKEND", "postgres"),
		},
		Entitlement: EntitlementConfig{
			SigningKey: signingKey,
			Issuer:     envOr("ENTITLEMENT_ISSUER", "tailscan"),
			Audience:   envOr("ENTITLEMENT_AUDIENCE", "tailscan-api"),
		},
		Forensics: ForensicsConfig{
			SourceTimeout: envDuration("FORENSIC_SOURCE_TIMEOUT", 3*time.Second),
		},
		RateLimit: RateLimitConfig{
			Disabled:       os.Getenv("RATELIMIT_DISABLED") == "true",
			ScansPerWindow: envInt("RATELIMIT_SCANS", 30),
			ReadsPerWindow: envInt("RATELIMIT_READS", 300),
			Window:         envDuration("RATELIMIT_WINDOW", time.Minute),
			Backend:        envOr("RATELIMIT_BACKEND", "memory"),
		},
	}
}

// Development reports whether APP_ENV selects development defaults.
func (s Server) Development() bool {
	return s.Environment == "development"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envList(key string) []string {
	return platformstrings.SplitList(os.Getenv(key), ",")
}
