package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thientu9562/identity-management/internal/events"
)

// InMemoryStore keeps the event log in process memory.
type InMemoryStore struct {
	mu        sync.RWMutex
	events    []events.Event
	published map[uuid.UUID]time.Time
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{published: make(map[uuid.UUID]time.Time)}
}

func (s *InMemoryStore) Append(_ context.Context, e *events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.Seq = uint64(len(s.events)) + 1
	s.events = append(s.events, *e)
	return nil
}

func (s *InMemoryStore) Since(_ context.Context, afterSeq uint64, limit int) ([]events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if afterSeq >= uint64(len(s.events)) {
		return []events.Event{}, nil
	}
	tail := s.events[afterSeq:]
	if limit > 0 && len(tail) > limit {
		tail = tail[:limit]
	}
	out := make([]events.Event, len(tail))
	copy(out, tail)
	return out, nil
}

func (s *InMemoryStore) Unpublished(_ context.Context, limit int) ([]events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []events.Event
	for _, e := range s.events {
		if _, done := s.published[e.ID]; done {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *InMemoryStore) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.published[id] = at
	}
	return nil
}
