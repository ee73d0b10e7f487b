package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts rate limit decisions. All methods are nil-safe.
type Metrics struct {
	Rejected    *prometheus.CounterVec
	StoreErrors prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idm_ratelimit_rejections_total",
			Help: "Requests rejected by the rate limiter by endpoint class",
		}, []string{"class"}),
		StoreErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "idm_ratelimit_store_errors_total",
			Help: "Bucket store failures; the request was let through",
		}),
	}
}

func (m *Metrics) IncRejected(class string) {
	if m == nil {
		return
	}
	m.Rejected.WithLabelValues(class).Inc()
}

func (m *Metrics) IncStoreErrors() {
	if m == nil {
		return
	}
	m.StoreErrors.Inc()
}
