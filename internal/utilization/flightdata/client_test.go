package flightdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailscan/internal/utilization/models"
	"tailscan/pkg/platform/circuit"
	"tailscan/pkg/platform/sentinel"
)

func TestClient_Flights(t *testing.T) {
	t.Run("decodes a flight report", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/flights/N904GS", r.URL.Path)
			assert.Equal(t, "secret", r.Header.Get("x-apikey"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"total_hours_12m": 212,
				"last_tracked": "2026-04-28T10:00:00Z",
				"data_source": "mlat",
				"flights": [{"origin":"KLAX","destination":"KSFO","filed_altitude":350,"filed_ete":55}]
			}`))
		}))
		defer srv.Close()

		report, err := New(srv.URL, "secret", time.Second).Flights(context.Background(), "N904GS")
		require.NoError(t, err)
		assert.Equal(t, 212, report.TotalHours12M)
		assert.Equal(t, models.FeedMLAT, report.Feed)
		assert.Equal(t, time.Date(2026, 4, 28, 10, 0, 0, 0, time.UTC), report.LastTracked)
		require.Len(t, report.Flights, 1)
		assert.Equal(t, "KSFO", report.Flights[0].Destination)
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		_, err := New(srv.URL, "", time.Second).Flights(context.Background(), "N12345")
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	})

	t.Run("server error is a plain failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := New(srv.URL, "", time.Second).Flights(context.Background(), "N12345")
		require.Error(t, err)
		assert.False(t, errors.Is(err, sentinel.ErrNotFound))
	})

	t.Run("slow provider times out", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		_, err := New(srv.URL, "", 20*time.Millisecond).Flights(context.Background(), "N12345")
		require.Error(t, err)
	})

	t.Run("open breaker short-circuits", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := New(srv.URL, "", time.Second, WithBreaker(circuit.New("flightdata", circuit.WithFailureThreshold(1), circuit.WithCooldown(time.Hour))))
		_, err := client.Flights(context.Background(), "N12345")
		require.Error(t, err)

		_, err = client.Flights(context.Background(), "N12345")
		assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
		assert.Equal(t, 1, calls)
	})
}
