package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for report generation.
type Metrics struct {
	Scans        *prometheus.CounterVec
	ScanDuration prometheus.Histogram
	Scores       prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		Scans: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tailscan_scans_total",
			Help: "Scans by outcome (completed, not_found, invalid, error)",
		}, []string{"outcome"}),
		ScanDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tailscan_scan_duration_seconds",
			Help:    "End-to-end scan latency",
			Buckets: prometheus.DefBuckets,
		}),
		Scores: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tailscan_confidence_score",
			Help:    "Distribution of confidence scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
	}
}

func (m *Metrics) IncrementScan(outcome string) {
	if m != nil {
		m.Scans.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObserveScan(seconds float64, score int) {
	if m != nil {
		m.ScanDuration.Observe(seconds)
		m.Scores.Observe(float64(score))
	}
}
