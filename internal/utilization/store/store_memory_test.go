package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailscan/internal/utilization/models"
	"tailscan/pkg/platform/sentinel"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("missing entry is not found", func(t *testing.T) {
		c := NewInMemoryCache()
		_, err := c.Get(ctx, "N904GS")
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	})

	t.Run("upsert replaces the single entry per tail", func(t *testing.T) {
		c := NewInMemoryCache()
		require.NoError(t, c.Upsert(ctx, &models.CacheEntry{
			TailNumber: "N904GS", TotalHours12M: 100, Source: models.SourceSimulated, ExpiresAt: now,
		}))
		require.NoError(t, c.Upsert(ctx, &models.CacheEntry{
			TailNumber: "N904GS", TotalHours12M: 210, Source: models.SourceVerifiedLive, ExpiresAt: now.Add(time.Hour),
		}))

		got, err := c.Get(ctx, "N904GS")
		require.NoError(t, err)
		assert.Equal(t, 210, got.TotalHours12M)
		assert.Equal(t, models.SourceVerifiedLive, got.Source)
	})

	t.Run("returned entry does not alias stored flights", func(t *testing.T) {
		c := NewInMemoryCache()
		require.NoError(t, c.Upsert(ctx, &models.CacheEntry{
			TailNumber: "N9305P",
			Raw:        models.RawFlights{Flights: []models.Flight{{Origin: "KLAX", Destination: "KSFO"}}},
		}))
		got, err := c.Get(ctx, "N9305P")
		require.NoError(t, err)
		got.Raw.Flights[0].Origin = "KJFK"

		again, err := c.Get(ctx, "N9305P")
		require.NoError(t, err)
		assert.Equal(t, "KLAX", again.Raw.Flights[0].Origin)
	})

	t.Run("hit serializes the same flights shape that was written", func(t *testing.T) {
		c := NewInMemoryCache()
		written := &models.CacheEntry{
			TailNumber: "N904GS",
			Source:     models.SourceVerifiedEmpty,
			Raw:        models.RawFlights{Flights: []models.Flight{}},
		}
		require.NoError(t, c.Upsert(ctx, written))

		got, err := c.Get(ctx, "N904GS")
		require.NoError(t, err)
		want, err := json.Marshal(written.Raw)
		require.NoError(t, err)
		have, err := json.Marshal(got.Raw)
		require.NoError(t, err)
		assert.JSONEq(t, string(want), string(have))
		assert.JSONEq(t, `{"flights":[]}`, string(have))
	})
}
