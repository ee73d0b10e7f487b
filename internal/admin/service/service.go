// Package service owns the admin role and the country-code allow-list.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/thientu9562/identity-management/internal/events"
	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
	"github.com/thientu9562/identity-management/pkg/platform/sentinel"
	"github.com/thientu9562/identity-management/pkg/platform/tx"
	"github.com/thientu9562/identity-management/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks AccessStore

type AccessStore interface {
	Admin(ctx context.Context) (domain.Address, error)
	Init(ctx context.Context, admin domain.Address, at time.Time) (bool, error)
	Transfer(ctx context.Context, current, next domain.Address, at time.Time) error
	AddCountryCode(ctx context.Context, code domain.CountryCode, at time.Time) (bool, error)
	HasCountryCode(ctx context.Context, code domain.CountryCode) (bool, error)
	CountryCodes(ctx context.Context) ([]domain.CountryCode, error)
}

type Service struct {
	store     AccessStore
	publisher events.Publisher
	tx        tx.Runner
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTxRunner(r tx.Runner) Option {
	return func(s *Service) {
		s.tx = r
	}
}

func New(store AccessStore, publisher events.Publisher, opts ...Option) *Service {
	s := &Service{
		store:     store,
		publisher: publisher,
		tx:        tx.NopRunner{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bootstrap installs initial as admin unless an admin already exists. A
// restart never overrides a transfer made while the service was running.
func (s *Service) Bootstrap(ctx context.Context, initial domain.Address) error {
	if initial.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "initial admin address is required")
	}
	installed, err := s.store.Init(ctx, initial, requestcontext.Now(ctx))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to initialise admin")
	}
	if installed {
		s.logger.InfoContext(ctx, "admin initialised", "admin", initial)
	}
	return nil
}

func (s *Service) Admin(ctx context.Context) (domain.Address, error) {
	admin, err := s.store.Admin(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domain.Address{}, dErrors.New(dErrors.CodeNotFound, "admin not initialised")
		}
		return domain.Address{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read admin")
	}
	return admin, nil
}

// RequireAdmin fails with CodeForbidden unless caller is the current admin.
func (s *Service) RequireAdmin(ctx context.Context, caller domain.Address) error {
	_, err := s.requireAdmin(ctx, caller)
	return err
}

func (s *Service) requireAdmin(ctx context.Context, caller domain.Address) (domain.Address, error) {
	admin, err := s.store.Admin(ctx)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return domain.Address{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read admin")
	}
	if err != nil || caller.IsZero() || caller != admin {
		return domain.Address{}, dErrors.New(dErrors.CodeForbidden, "caller is not the admin")
	}
	return admin, nil
}

// TransferAdmin hands the role to newAdmin with immediate effect.
func (s *Service) TransferAdmin(ctx context.Context, caller, newAdmin domain.Address) error {
	if _, err := s.requireAdmin(ctx, caller); err != nil {
		return err
	}
	if newAdmin.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "new admin address is required")
	}

	now := requestcontext.Now(ctx)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Transfer(ctx, caller, newAdmin, now); err != nil {
			if errors.Is(err, sentinel.ErrInvalidState) {
				return dErrors.New(dErrors.CodeForbidden, "caller is not the admin")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to transfer admin")
		}
		if err := s.publisher.Emit(ctx, events.NewAdminTransferred(caller, newAdmin, now)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record admin event")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "admin transferred", "old_admin", caller, "new_admin", newAdmin)
	return nil
}

// AddValidCountryCode allows code for the country check. Adding a code that is
// already allowed succeeds and emits nothing.
func (s *Service) AddValidCountryCode(ctx context.Context, caller domain.Address, code domain.CountryCode) error {
	if _, err := s.requireAdmin(ctx, caller); err != nil {
		return err
	}
	if !code.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown country code")
	}

	now := requestcontext.Now(ctx)
	var added bool
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		added, err = s.store.AddCountryCode(ctx, code, now)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to add country code")
		}
		if !added {
			return nil
		}
		if err := s.publisher.Emit(ctx, events.NewValidCountryCodeAdded(code, now)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record country code event")
		}
		return nil
	})
	if err != nil {
		return err
	}
	if added {
		s.logger.InfoContext(ctx, "valid country code added", "country_code", code)
	}
	return nil
}

func (s *Service) IsValidCountryCode(ctx context.Context, code domain.CountryCode) (bool, error) {
	ok, err := s.store.HasCountryCode(ctx, code)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check country code")
	}
	return ok, nil
}

func (s *Service) ValidCountryCodes(ctx context.Context) ([]domain.CountryCode, error) {
	codes, err := s.store.CountryCodes(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list country codes")
	}
	return codes, nil
}
