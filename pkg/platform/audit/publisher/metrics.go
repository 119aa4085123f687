package publisher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for audit publishing.
type Metrics struct {
	Published       *prometheus.CounterVec
	Dropped         prometheus.Counter
	PersistFailures prometheus.Counter
}

// NewMetrics creates a new Metrics instance with audit metrics registered.
func NewMetrics() *Metrics {
	return &Metrics{
		Published: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tailscan_audit_published_total",
			Help: "Audit events handed to the sink by category",
		}, []string{"category"}),
		Dropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tailscan_audit_dropped_total",
			Help: "Audit events dropped because the async buffer was full",
		}),
		PersistFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tailscan_audit_persist_failures_total",
			Help: "Audit events the sink failed to accept",
		}),
	}
}

func (m *Metrics) IncPublished(category string) {
	if m != nil {
		m.Published.WithLabelValues(category).Inc()
	}
}

func (m *Metrics) IncDropped() {
	if m != nil {
		m.Dropped.Inc()
	}
}

func (m *Metrics) IncPersistFailure() {
	if m != nil {
		m.PersistFailures.Inc()
	}
}
