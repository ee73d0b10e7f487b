// Package relay drains the event outbox into an external sink.
package relay

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/thientu9562/identity-management/internal/events"
	"github.com/thientu9562/identity-management/internal/events/metrics"
	"github.com/thientu9562/identity-management/pkg/platform/circuit"
)

const (
	defaultInterval  = time.Second
	defaultBatchSize = 100
)

// Sink receives batches of committed events. Delivery is at-least-once;
// consumers deduplicate by event id.
type Sink interface {
	Publish(ctx context.Context, batch []events.Event) error
}

// Worker polls unpublished events and forwards them to the sink. Sink
// failures never reach the operations that emitted the events; the breaker
// spaces out retries while the sink is down.
type Worker struct {
	store    events.Store
	sink     Sink
	breaker  *circuit.Breaker
	interval time.Duration
	batch    int
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Worker)

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batch = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(w *Worker) {
		if b != nil {
			w.breaker = b
		}
	}
}

func NewWorker(store events.Store, sink Sink, opts ...Option) *Worker {
	w := &Worker{
		store:    store,
		sink:     sink,
		breaker:  circuit.New("event-relay", circuit.WithFailureThreshold(3)),
		interval: defaultInterval,
		batch:    defaultBatchSize,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run relays until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for {
				n, err := w.RelayOnce(ctx)
				if err != nil || n < w.batch {
					break
				}
			}
		}
	}
}

// RelayOnce forwards one batch and returns how many events were delivered.
func (w *Worker) RelayOnce(ctx context.Context) (int, error) {
	if !w.breaker.Allow(time.Now()) {
		return 0, nil
	}
	pending, err := w.store.Unpublished(ctx, w.batch)
	if err != nil {
		w.logger.ErrorContext(ctx, "event relay: load outbox failed", "error", err)
		return 0, err
	}
	w.metrics.SetRelayBacklog(len(pending))
	if len(pending) == 0 {
		return 0, nil
	}

	if err := w.sink.Publish(ctx, pending); err != nil {
		w.metrics.IncRelayFailure()
		if _, change := w.breaker.RecordFailure(); change.Opened {
			w.logger.ErrorContext(ctx, "event relay: sink unavailable, backing off",
				"breaker", w.breaker.Name(),
				"error", err,
			)
		} else {
			w.logger.WarnContext(ctx, "event relay: publish failed", "error", err)
		}
		return 0, err
	}
	if _, change := w.breaker.RecordSuccess(); change.Closed {
		w.logger.InfoContext(ctx, "event relay: sink recovered", "breaker", w.breaker.Name())
	}

	ids := make([]uuid.UUID, len(pending))
	for i, e := range pending {
		ids[i] = e.ID
	}
	if err := w.store.MarkPublished(ctx, ids, time.Now()); err != nil {
		w.logger.ErrorContext(ctx, "event relay: mark published failed", "error", err)
		return 0, err
	}
	w.metrics.AddRelayed(len(pending))
	return len(pending), nil
}
