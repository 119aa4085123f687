package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for identity resolution.
type Metrics struct {
	// Resolutions by tier ("registry", "live_discovery", "not_found")
	Resolutions *prometheus.CounterVec

	// Discovery calls by provider and outcome
	DiscoveryCalls *prometheus.CounterVec

	// Registry store lookup latency
	LookupLatency prometheus.Histogram
}

// New creates a new Metrics instance with all registry metrics registered.
func New() *Metrics {
	return &Metrics{
		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tailscan_registry_resolutions_total",
			Help: "Identity resolutions by the tier that answered",
		}, []string{"tier"}),

		DiscoveryCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tailscan_registry_discovery_calls_total",
			Help: "Live discovery calls by provider and outcome",
		}, []string{"provider", "outcome"}),

		LookupLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tailscan_registry_lookup_duration_seconds",
			Help:    "Duration of registry store lookups",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),
	}
}

func (m *Metrics) IncrementResolution(tier string) {
	if m != nil {
		m.Resolutions.WithLabelValues(tier).Inc()
	}
}

func (m *Metrics) IncrementDiscovery(provider, outcome string) {
	if m != nil {
		m.DiscoveryCalls.WithLabelValues(provider, outcome).Inc()
	}
}

func (m *Metrics) ObserveLookupLatency(d time.Duration) {
	if m != nil {
		m.LookupLatency.Observe(d.Seconds())
	}
}
