package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/thientu9562/identity-management/pkg/domain"
)

type InMemory struct {
	mu        sync.RWMutex
	admin     *domain.Address
	countries map[domain.CountryCode]time.Time
}

func NewInMemory() *InMemory {
	return &InMemory{countries: make(map[domain.CountryCode]time.Time)}
}

func (s *InMemory) Admin(_ context.Context) (domain.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.admin == nil {
		return domain.Address{}, ErrNoAdmin
	}
	return *s.admin, nil
}

// Init sets the admin if none is set yet and reports whether it did.
func (s *InMemory) Init(_ context.Context, admin domain.Address, _ time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin != nil {
		return false, nil
	}
	s.admin = &admin
	return true, nil
}

// Transfer replaces current with next, failing if current is no longer the admin.
func (s *InMemory) Transfer(_ context.Context, current, next domain.Address, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin == nil || *s.admin != current {
		return ErrAdminChanged
	}
	s.admin = &next
	return nil
}

// AddCountryCode inserts code and reports whether it was new.
func (s *InMemory) AddCountryCode(_ context.Context, code domain.CountryCode, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.countries[code]; ok {
		return false, nil
	}
	s.countries[code] = at
	return true, nil
}

func (s *InMemory) HasCountryCode(_ context.Context, code domain.CountryCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.countries[code]
	return ok, nil
}

// CountryCodes returns the allow-list in ascending order.
func (s *InMemory) CountryCodes(_ context.Context) ([]domain.CountryCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	codes := make([]domain.CountryCode, 0, len(s.countries))
	for code := range s.countries {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes, nil
}
