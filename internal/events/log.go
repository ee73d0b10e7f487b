package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thientu9562/identity-management/internal/events/metrics"
	"github.com/thientu9562/identity-management/pkg/platform/tx"
)

// Store persists events in order. Append assigns Seq and joins any unit of
// work carried by ctx, so an event commits with the state change it reports.
type Store interface {
	Append(ctx context.Context, e *Event) error
	Since(ctx context.Context, afterSeq uint64, limit int) ([]Event, error)
	Unpublished(ctx context.Context, limit int) ([]Event, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

const subscriberBuffer = 64

// Log is the primary, fail-closed Publisher: Emit returns an error when the
// event cannot be stored, and the calling operation fails with it. Subscribers
// are notified after the surrounding unit of work commits.
type Log struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

type Option func(*Log)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) {
		l.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Log) {
		l.metrics = m
	}
}

func NewLog(store Store, opts ...Option) *Log {
	l := &Log{
		store:  store,
		logger: slog.Default(),
		subs:   make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Emit appends e and schedules subscriber delivery for commit time.
func (l *Log) Emit(ctx context.Context, e Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if err := l.store.Append(ctx, &e); err != nil {
		l.metrics.IncPersistFailure(string(e.Name))
		l.logger.ErrorContext(ctx, "event persistence failed",
			"event", e.Name,
			"error", err,
		)
		return fmt.Errorf("append %s event: %w", e.Name, err)
	}
	l.metrics.IncEmitted(string(e.Name))
	tx.AfterCommit(ctx, func() { l.broadcast(e) })
	return nil
}

// Since returns up to limit events with Seq > afterSeq in order.
func (l *Log) Since(ctx context.Context, afterSeq uint64, limit int) ([]Event, error) {
	return l.store.Since(ctx, afterSeq, limit)
}

// Subscribe returns a channel receiving every event committed from now on and
// a cancel func that closes it. A subscriber that falls behind by more than
// its buffer loses events and must catch up through Since.
func (l *Log) Subscribe() (<-chan Event, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++
	ch := make(chan Event, subscriberBuffer)
	l.subs[id] = ch
	return ch, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if c, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(c)
		}
	}
}

func (l *Log) broadcast(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ch := range l.subs {
		select {
		case ch <- e:
		default:
			l.metrics.IncSubscriberDrop()
			l.logger.Warn("event subscriber lagging, dropping event",
				"event", e.Name,
				"seq", e.Seq,
			)
		}
	}
}
