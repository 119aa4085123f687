package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailscan/internal/entitlement"
	"tailscan/internal/platform/config"
	regservice "tailscan/internal/registry/service"
	umodels "tailscan/internal/utilization/models"
)

// TestBuild_InMemory wires the whole application against the demo fixtures.
// Metrics register with the default registry, so Build runs once here.
func TestBuild_InMemory(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "REDIS_URL", "KAFKA_BROKERS", "FAA_DISCOVERY_URL", "TC_DISCOVERY_URL",
		"FLIGHTDATA_URL", "UTILIZATION_CACHE_BACKEND", "RATELIMIT_BACKEND",
	} {
		t.Setenv(key, "")
	}
	cfg := config.FromEnv()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := Build(context.Background(), cfg, quiet)
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.RateLimiter)

	t.Run("registry hit produces a report", func(t *testing.T) {
		report, err := a.Reports.Scan(context.Background(), "n9305p", entitlement.Anonymous)
		require.NoError(t, err)
		assert.Equal(t, "N9305P", report.TailNumber)
		assert.Equal(t, "PIPER", report.Identity.Manufacturer)
		assert.Equal(t, 1, report.ForensicCounts.Accidents)
		assert.Nil(t, report.SourceRecords)
	})

	t.Run("unknown aircraft is not found", func(t *testing.T) {
		_, err := a.Reports.Scan(context.Background(), "N1", entitlement.Anonymous)
		var nf *regservice.NotFoundError
		assert.True(t, errors.As(err, &nf))
	})

	t.Run("full plan gets simulated utilization without a provider", func(t *testing.T) {
		ent := entitlement.Entitlement{PaymentStatus: entitlement.StatusPaid, Plan: entitlement.PlanFull}
		res, err := a.Utilization.Get(context.Background(), "N904GS", ent)
		require.NoError(t, err)
		require.Equal(t, umodels.StatusAvailable, res.Status)
		assert.Equal(t, umodels.SourceSimulated, res.Entry.Source)
	})
}
