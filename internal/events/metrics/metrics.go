package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds event pipeline metrics. All methods are nil-safe.
type Metrics struct {
	Emitted         *prometheus.CounterVec
	PersistFailures *prometheus.CounterVec
	SubscriberDrops prometheus.Counter
	Relayed         prometheus.Counter
	RelayFailures   prometheus.Counter
	RelayBacklog    prometheus.Gauge
}

// New registers the metrics with reg; nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Emitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idm_events_emitted_total",
			Help: "Events appended to the event log by name",
		}, []string{"event"}),
		PersistFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idm_events_persist_failures_total",
			Help: "Events that could not be appended, failing their operation",
		}, []string{"event"}),
		SubscriberDrops: f.NewCounter(prometheus.CounterOpts{
			Name: "idm_events_subscriber_drops_total",
			Help: "Events not delivered to a lagging in-process subscriber",
		}),
		Relayed: f.NewCounter(prometheus.CounterOpts{
			Name: "idm_events_relayed_total",
			Help: "Events delivered to the external sink",
		}),
		RelayFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "idm_events_relay_failures_total",
			Help: "Failed relay batches",
		}),
		RelayBacklog: f.NewGauge(prometheus.GaugeOpts{
			Name: "idm_events_relay_backlog",
			Help: "Unpublished events seen in the last relay poll",
		}),
	}
}

func (m *Metrics) IncEmitted(event string) {
	if m == nil {
		return
	}
	m.Emitted.WithLabelValues(event).Inc()
}

func (m *Metrics) IncPersistFailure(event string) {
	if m == nil {
		return
	}
	m.PersistFailures.WithLabelValues(event).Inc()
}

func (m *Metrics) IncSubscriberDrop() {
	if m == nil {
		return
	}
	m.SubscriberDrops.Inc()
}

func (m *Metrics) AddRelayed(n int) {
	if m == nil {
		return
	}
	m.Relayed.Add(float64(n))
}

func (m *Metrics) IncRelayFailure() {
	if m == nil {
		return
	}
	m.RelayFailures.Inc()
}

func (m *Metrics) SetRelayBacklog(n int) {
	if m == nil {
		return
	}
	m.RelayBacklog.Set(float64(n))
}
