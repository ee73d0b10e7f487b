package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for identity registration.
type Metrics struct {
	Registered       prometheus.Counter
	Rejected         *prometheus.CounterVec
	RegisterDuration prometheus.Histogram
}

// New registers the metrics with reg; nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Registered: f.NewCounter(prometheus.CounterOpts{
			Name: "idm_identities_registered_total",
			Help: "Total number of identities registered",
		}),
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idm_identity_registrations_rejected_total",
			Help: "Rejected registrations by reason",
		}, []string{"reason"}),
		RegisterDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "idm_identity_register_duration_seconds",
			Help:    "Duration of RegisterIdentity including proof verification",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncRegistered() {
	if m == nil {
		return
	}
	m.Registered.Inc()
}

func (m *Metrics) IncRejected(reason string) {
	if m == nil {
		return
	}
	m.Rejected.WithLabelValues(reason).Inc()
}

// ObserveRegister records the duration of a registration.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRegister(start time.Time) {
	if m == nil {
		return
	}
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}
