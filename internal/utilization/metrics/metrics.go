package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the utilization cache.
type Metrics struct {
	Lookups         *prometheus.CounterVec
	Fallbacks       prometheus.Counter
	ProviderLatency prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tailscan_utilization_lookups_total",
			Help: "Utilization requests by outcome (hit, miss, locked, payment_required)",
		}, []string{"outcome"}),
		Fallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tailscan_utilization_simulated_fallbacks_total",
			Help: "Cache fills that used simulated figures after a provider failure",
		}),
		ProviderLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tailscan_utilization_provider_duration_seconds",
			Help:    "Latency of flight-data provider calls",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}
}

func (m *Metrics) IncrementLookup(outcome string) {
	if m != nil {
		m.Lookups.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementFallback() {
	if m != nil {
		m.Fallbacks.Inc()
	}
}

func (m *Metrics) ObserveProviderLatency(seconds float64) {
	if m != nil {
		m.ProviderLatency.Observe(seconds)
	}
}
