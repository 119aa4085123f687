package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"TAILSCAN_ADDR", "APP_ENV", "DATABASE_URL", "KAFKA_BROKERS", "DISCOVERY_TIMEOUT",
		"DISCOVERY_ALLOW_ESTIMATED", "UTILIZATION_CACHE_TTL", "UTILIZATION_CACHE_BACKEND",
		"ENTITLEMENT_SIGNING_KEY", "FLIGHTDATA_TIMEOUT", "RATELIMIT_DISABLED", "RATELIMIT_SCANS",
		"RATELIMIT_WINDOW",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.False(t, cfg.Development())
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "tailscan.audit", cfg.Kafka.AuditTopic)
	assert.Equal(t, 5*time.Second, cfg.Discovery.Timeout)
	assert.False(t, cfg.Discovery.AllowEstimated)
	assert.Equal(t, 8*time.Second, cfg.FlightData.Timeout)
	assert.Equal(t, 168*time.Hour, cfg.Utilization.CacheTTL)
	assert.Equal(t, "postgres", cfg.Utilization.Backend)
	assert.NotEmpty(t, cfg.Entitlement.SigningKey)
	assert.False(t, cfg.RateLimit.Disabled)
	assert.Equal(t, 30, cfg.RateLimit.ScansPerWindow)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("DISCOVERY_TIMEOUT", "750ms")
	t.Setenv("DISCOVERY_ALLOW_ESTIMATED", "true")
	t.Setenv("UTILIZATION_CACHE_TTL", "24h")
	t.Setenv("UTILIZATION_CACHE_BACKEND", "redis")
	t.Setenv("RATELIMIT_SCANS", "5")

	cfg := FromEnv()
	assert.True(t, cfg.Development())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 750*time.Millisecond, cfg.Discovery.Timeout)
	assert.True(t, cfg.Discovery.AllowEstimated)
	assert.Equal(t, 24*time.Hour, cfg.Utilization.CacheTTL)
	assert.Equal(t, "redis", cfg.Utilization.Backend)
	assert.Equal(t, 5, cfg.RateLimit.ScansPerWindow)
}

func TestFromEnv_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("DISCOVERY_TIMEOUT", "soon")
	assert.Equal(t, 5*time.Second, FromEnv().Discovery.Timeout)
}
