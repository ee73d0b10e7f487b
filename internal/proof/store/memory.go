package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/thientu9562/identity-management/internal/proof/models"
	"github.com/thientu9562/identity-management/pkg/domain"
	"github.com/thientu9562/identity-management/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded ledger for tests and single-instance dev.
type InMemory struct {
	mu       sync.Mutex
	requests map[domain.RequestID]*models.ProofRequest
	latest   domain.RequestID
	pending  *domain.RequestID
}

func NewInMemory() *InMemory {
	return &InMemory{requests: make(map[domain.RequestID]*models.ProofRequest)}
}

func (s *InMemory) Allocate(_ context.Context, requester domain.Address, kind models.Kind, now time.Time) (*models.ProofRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return nil, ErrSlotBusy
	}
	id := s.latest.Next()
	req := models.NewPending(id, requester, kind, now)
	s.requests[id] = req
	s.latest = id
	s.pending = &id
	return req.Clone(), nil
}

func (s *InMemory) Fulfill(_ context.Context, id domain.RequestID, result bool, now time.Time) (*models.ProofRequest, error) {
	return s.resolve(id, func(r *models.ProofRequest) error { return r.Fulfill(result, now) })
}

func (s *InMemory) Cancel(_ context.Context, id domain.RequestID, now time.Time) (*models.ProofRequest, error) {
	return s.resolve(id, func(r *models.ProofRequest) error { return r.Cancel(now) })
}

func (s *InMemory) resolve(id domain.RequestID, apply func(*models.ProofRequest) error) (*models.ProofRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("request %s: %w", id, sentinel.ErrNotFound)
	}
	if !req.IsPending() {
		return nil, fmt.Errorf("request %s is %s: %w", id, req.Status, ErrNotPending)
	}
	if err := apply(req); err != nil {
		return nil, fmt.Errorf("request %s: %w", id, ErrNotPending)
	}
	s.pending = nil
	return req.Clone(), nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.RequestID) (*models.ProofRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("request %s: %w", id, sentinel.ErrNotFound)
	}
	return req.Clone(), nil
}

func (s *InMemory) Pending(_ context.Context) (*models.ProofRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil, fmt.Errorf("no pending request: %w", sentinel.ErrNotFound)
	}
	return s.requests[*s.pending].Clone(), nil
}

func (s *InMemory) LatestRequestID(_ context.Context) (domain.RequestID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, nil
}
