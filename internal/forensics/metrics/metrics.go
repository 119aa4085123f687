package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for forensic aggregation.
type Metrics struct {
	// Fetch latencies by source
	SourceLatency *prometheus.HistogramVec

	// Failed fetches by source
	SourceFailures *prometheus.CounterVec
}

// New creates a new Metrics instance with all forensic metrics registered.
func New() *Metrics {
	return &Metrics{
		SourceLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tailscan_forensic_source_duration_seconds",
			Help:    "Duration of forensic record fetches by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"source"}), // source: "ntsb", "cadors", "sdr", "liens"

		SourceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tailscan_forensic_source_failures_total",
			Help: "Forensic fetches that failed and were counted as empty",
		}, []string{"source"}),
	}
}

// ObserveSourceLatency records the duration of fetching one source.
func (m *Metrics) ObserveSourceLatency(source string, d time.Duration) {
	if m != nil {
		m.SourceLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementFailure records a failed source fetch.
func (m *Metrics) IncrementFailure(source string) {
	if m != nil {
		m.SourceFailures.WithLabelValues(source).Inc()
	}
}
