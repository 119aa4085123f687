package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejections  *prometheus.CounterVec
	CheckErrors prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tailscan_ratelimit_rejections_total",
			Help: "Requests rejected by the per-client rate limiter",
		}, []string{"class"}),
		CheckErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tailscan_ratelimit_check_errors_total",
			Help: "Rate limit checks that failed and let the request through",
		}),
	}
}

func (m *Metrics) IncRejection(class string) {
	if m != nil {
		m.Rejections.WithLabelValues(class).Inc()
	}
}

func (m *Metrics) IncCheckError() {
	if m != nil {
		m.CheckErrors.Inc()
	}
}
