package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the proof request lifecycle. All methods are nil-safe.
type Metrics struct {
	Requested     *prometheus.CounterVec
	Fulfilled     *prometheus.CounterVec
	Cancelled     prometheus.Counter
	Rejected      *prometheus.CounterVec
	Pending       prometheus.Gauge
	TimeToFulfill prometheus.Histogram
}

// New registers the metrics with reg; nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requested: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idm_proof_requests_total",
			Help: "Proof requests accepted by kind",
		}, []string{"kind"}),
		Fulfilled: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idm_proof_results_total",
			Help: "Proof results accepted by kind and outcome",
		}, []string{"kind", "result"}),
		Cancelled: f.NewCounter(prometheus.CounterOpts{
			Name: "idm_proof_requests_cancelled_total",
			Help: "Stale proof requests cancelled by the admin",
		}),
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idm_proof_rejections_total",
			Help: "Rejected proof operations by reason",
		}, []string{"reason"}),
		Pending: f.NewGauge(prometheus.GaugeOpts{
			Name: "idm_proof_decryption_pending",
			Help: "1 while a proof request awaits decryption",
		}),
		TimeToFulfill: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "idm_proof_time_to_fulfill_seconds",
			Help:    "Time between a proof request and its accepted result",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 300, 600},
		}),
	}
}

func (m *Metrics) IncRequested(kind string) {
	if m == nil {
		return
	}
	m.Requested.WithLabelValues(kind).Inc()
	m.Pending.Set(1)
}

// ObserveFulfilled records an accepted result for a request made at requestedAt.
func (m *Metrics) ObserveFulfilled(kind string, result bool, requestedAt, at time.Time) {
	if m == nil {
		return
	}
	outcome := "false"
	if result {
		outcome = "true"
	}
	m.Fulfilled.WithLabelValues(kind, outcome).Inc()
	m.TimeToFulfill.Observe(at.Sub(requestedAt).Seconds())
	m.Pending.Set(0)
}

func (m *Metrics) IncCancelled() {
	if m == nil {
		return
	}
	m.Cancelled.Inc()
	m.Pending.Set(0)
}

func (m *Metrics) IncRejected(reason string) {
	if m == nil {
		return
	}
	m.Rejected.WithLabelValues(reason).Inc()
}
