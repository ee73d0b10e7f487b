package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/thientu9562/identity-management/internal/events"
	"github.com/thientu9562/identity-management/internal/identity/metrics"
	"github.com/thientu9562/identity-management/internal/identity/models"
	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
	"github.com/thientu9562/identity-management/pkg/platform/sentinel"
	"github.com/thientu9562/identity-management/pkg/platform/tx"
	"github.com/thientu9562/identity-management/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks IdentityStore,CiphertextVerifier

type IdentityStore interface {
	Create(ctx context.Context, identity *models.Identity) error
	FindByUser(ctx context.Context, user domain.Address) (*models.Identity, error)
	Exists(ctx context.Context, user domain.Address) (bool, error)
}

// CiphertextVerifier checks that proof binds handle to user for slot kind.
type CiphertextVerifier interface {
	Verify(ctx context.Context, user domain.Address, kind models.AttributeKind, handle models.CiphertextHandle, proof []byte) error
}

// Service registers encrypted identities and answers registration lookups.
type Service struct {
	store     IdentityStore
	verifier  CiphertextVerifier
	publisher events.Publisher
	tx        tx.Runner
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTxRunner scopes registration and its event in one unit of work.
// Defaults to tx.NopRunner.
func WithTxRunner(r tx.Runner) Option {
	return func(s *Service) {
		s.tx = r
	}
}

func New(store IdentityStore, verifier CiphertextVerifier, publisher events.Publisher, opts ...Option) *Service {
	s := &Service{
		store:     store,
		verifier:  verifier,
		publisher: publisher,
		tx:        tx.NopRunner{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterIdentity stores the five encrypted attributes for user. Either all
// five are stored and IdentityRegistered is emitted, or nothing changes.
func (s *Service) RegisterIdentity(ctx context.Context, user domain.Address, inputs models.Inputs) error {
	start := time.Now()
	defer s.metrics.ObserveRegister(start)

	if user.IsZero() {
		s.metrics.IncRejected("zero_user")
		return dErrors.New(dErrors.CodeValidation, "user address is required")
	}
	if err := inputs.CheckTypes(); err != nil {
		s.metrics.IncRejected("unsupported_handle_type")
		return err
	}
	for _, kind := range models.Kinds() {
		in := inputs[kind]
		if err := s.verifier.Verify(ctx, user, kind, in.Handle, in.Proof); err != nil {
			s.metrics.IncRejected("invalid_input_proof")
			return dErrors.Wrap(err, dErrors.CodeValidation, "input proof rejected for "+kind.String())
		}
	}

	now := requestcontext.Now(ctx)
	identity := &models.Identity{
		User:         user,
		Handles:      inputs.Handles(),
		RegisteredAt: now,
	}
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		exists, err := s.store.Exists(ctx, user)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check registration")
		}
		if exists {
			return alreadyRegistered()
		}
		if err := s.store.Create(ctx, identity); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return alreadyRegistered()
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store identity")
		}
		if err := s.publisher.Emit(ctx, events.NewIdentityRegistered(user, now)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record identity event")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrHandlesAlreadySaved) {
			s.metrics.IncRejected("already_registered")
		}
		return err
	}

	s.metrics.IncRegistered()
	s.logger.InfoContext(ctx, "identity registered", "user", user)
	return nil
}

func alreadyRegistered() error {
	return dErrors.Wrap(models.ErrHandlesAlreadySaved, dErrors.CodeConflict,
		"HandlesAlreadySavedForRequestID: identity already registered")
}

// IsIdentityRegistered reports whether user has a stored identity.
func (s *Service) IsIdentityRegistered(ctx context.Context, user domain.Address) (bool, error) {
	exists, err := s.store.Exists(ctx, user)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check registration")
	}
	return exists, nil
}

// Handles returns the stored handles for user.
func (s *Service) Handles(ctx context.Context, user domain.Address) (models.Handles, error) {
	identity, err := s.store.FindByUser(ctx, user)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Handles{}, dErrors.New(dErrors.CodeNotFound, "identity not registered")
		}
		return models.Handles{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load identity")
	}
	return identity.Handles, nil
}
