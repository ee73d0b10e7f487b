package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/thientu9562/identity-management/internal/identity/models"
	"github.com/thientu9562/identity-management/pkg/domain"
	"github.com/thientu9562/identity-management/pkg/platform/sentinel"
)

// InMemory stores identities in a map for tests and dev.
type InMemory struct {
	mu         sync.RWMutex
	identities map[domain.Address]models.Identity
}

func NewInMemory() *InMemory {
	return &InMemory{identities: make(map[domain.Address]models.Identity)}
}

func (s *InMemory) Create(_ context.Context, identity *models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.identities[identity.User]; ok {
		return fmt.Errorf("identity %s: %w", identity.User, sentinel.ErrAlreadyUsed)
	}
	s.identities[identity.User] = *identity
	return nil
}

func (s *InMemory) FindByUser(_ context.Context, user domain.Address) (*models.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.identities[user]
	if !ok {
		return nil, fmt.Errorf("identity %s: %w", user, sentinel.ErrNotFound)
	}
	return &identity, nil
}

func (s *InMemory) Exists(_ context.Context, user domain.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.identities[user]
	return ok, nil
}
