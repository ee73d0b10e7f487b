// Package service is the proof state machine. The system is either idle or
// awaiting one decryption; a proof request moves it to awaiting, and a result
// carrying enough KMS signatures (or an admin cancelling a stale request)
// moves it back.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/thientu9562/identity-management/internal/events"
	"github.com/thientu9562/identity-management/internal/proof/metrics"
	"github.com/thientu9562/identity-management/internal/proof/models"
	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
	"github.com/thientu9562/identity-management/pkg/platform/sentinel"
	"github.com/thientu9562/identity-management/pkg/platform/tx"
	"github.com/thientu9562/identity-management/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Ledger,RegistrationChecker,SignatureVerifier,AdminChecker

const tracerName = "github.com/thientu9562/identity-management/internal/proof/service"

// DefaultStaleAfter is how long a request must stay pending before the admin
// may cancel it.
const DefaultStaleAfter = 10 * time.Minute

type Ledger interface {
	Allocate(ctx context.Context, requester domain.Address, kind models.Kind, now time.Time) (*models.ProofRequest, error)
	Fulfill(ctx context.Context, id domain.RequestID, result bool, now time.Time) (*models.ProofRequest, error)
	Cancel(ctx context.Context, id domain.RequestID, now time.Time) (*models.ProofRequest, error)
	FindByID(ctx context.Context, id domain.RequestID) (*models.ProofRequest, error)
	Pending(ctx context.Context) (*models.ProofRequest, error)
	LatestRequestID(ctx context.Context) (domain.RequestID, error)
}

type RegistrationChecker interface {
	IsIdentityRegistered(ctx context.Context, user domain.Address) (bool, error)
}

// SignatureVerifier checks a KMS quorum over (requestID, result).
type SignatureVerifier interface {
	Verify(requestID domain.RequestID, result bool, signatures [][]byte) error
}

// AdminChecker gates the cancel path.
type AdminChecker interface {
	RequireAdmin(ctx context.Context, caller domain.Address) error
}

type Service struct {
	ledger     Ledger
	identities RegistrationChecker
	signatures SignatureVerifier
	admin      AdminChecker
	publisher  events.Publisher
	tx         tx.Runner
	staleAfter time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
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

func WithTxRunner(r tx.Runner) Option {
	return func(s *Service) {
		s.tx = r
	}
}

// WithStaleAfter sets the minimum age of a pending request before it can be
// cancelled. Non-positive values are ignored.
func WithStaleAfter(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.staleAfter = d
		}
	}
}

func WithAdminChecker(a AdminChecker) Option {
	return func(s *Service) {
		s.admin = a
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer(tracerName)
	}
}

func New(ledger Ledger, identities RegistrationChecker, signatures SignatureVerifier, publisher events.Publisher, opts ...Option) *Service {
	s := &Service{
		ledger:     ledger,
		identities: identities,
		signatures: signatures,
		publisher:  publisher,
		tx:         tx.NopRunner{},
		staleAfter: DefaultStaleAfter,
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ProveAgeOver18(ctx context.Context, caller domain.Address) (domain.RequestID, error) {
	return s.request(ctx, caller, models.KindAgeOver18)
}

func (s *Service) ProveAgeOver21AndValidCountry(ctx context.Context, caller domain.Address) (domain.RequestID, error) {
	return s.request(ctx, caller, models.KindAgeOver21AndValidCountry)
}

func (s *Service) request(ctx context.Context, caller domain.Address, kind models.Kind) (id domain.RequestID, err error) {
	ctx, span := s.tracer.Start(ctx, "proof.request", trace.WithAttributes(
		attribute.String("proof.kind", string(kind)),
		attribute.String("proof.requester", caller.String()),
	))
	defer func() { endSpan(span, err) }()

	if caller.IsZero() {
		return domain.RequestID{}, dErrors.New(dErrors.CodeUnauthorized, "caller is required")
	}
	registered, err := s.identities.IsIdentityRegistered(ctx, caller)
	if err != nil {
		return domain.RequestID{}, err
	}
	if !registered {
		s.metrics.IncRejected("identity_not_registered")
		return domain.RequestID{}, dErrors.Wrap(models.ErrIdentityNotRegistered, dErrors.CodeForbidden,
			"IdentityNotRegistered: caller has no registered identity")
	}

	now := requestcontext.Now(ctx)
	var req *models.ProofRequest
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		req, err = s.ledger.Allocate(ctx, caller, kind, now)
		if err != nil {
			if errors.Is(err, sentinel.ErrBusy) {
				return dErrors.Wrap(models.ErrDecryptionPending, dErrors.CodeConflict,
					"DecryptionPending: another proof request is awaiting decryption")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate proof request")
		}
		if err := s.publisher.Emit(ctx, events.NewProofRequested(caller, req.ID, string(kind), now)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record proof request event")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrDecryptionPending) {
			s.metrics.IncRejected("decryption_pending")
		}
		return domain.RequestID{}, err
	}

	span.SetAttributes(attribute.String("proof.request_id", req.ID.String()))
	s.metrics.IncRequested(string(kind))
	s.logger.InfoContext(ctx, "proof requested",
		"request_id", requestcontext.RequestID(ctx),
		"proof_request_id", req.ID.String(),
		"user", caller,
		"kind", kind,
	)
	return req.ID, nil
}

func noHandle(id domain.RequestID, cause error) error {
	return dErrors.Wrap(errors.Join(models.ErrNoHandleFound, cause), dErrors.CodeNotFound,
		"NoHandleFoundForRequestID: no pending request "+id.String())
}

// HandleProofResult accepts the oracle's decrypted result for the pending
// request. Signatures are checked before any state changes, so a rejected
// submission leaves the request pending for a corrected retry.
func (s *Service) HandleProofResult(ctx context.Context, id domain.RequestID, result bool, signatures [][]byte) (err error) {
	ctx, span := s.tracer.Start(ctx, "proof.handle_result", trace.WithAttributes(
		attribute.String("proof.request_id", id.String()),
		attribute.Int("proof.signatures", len(signatures)),
	))
	defer func() { endSpan(span, err) }()

	req, err := s.ledger.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncRejected("no_handle")
			return noHandle(id, err)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load proof request")
	}
	if !req.IsPending() {
		s.metrics.IncRejected("no_handle")
		return noHandle(id, sentinel.ErrInvalidState)
	}

	if err := s.signatures.Verify(id, result, signatures); err != nil {
		s.metrics.IncRejected("invalid_kms_signatures")
		s.logger.WarnContext(ctx, "proof result rejected",
			"proof_request_id", id.String(),
			"error", err,
		)
		return err
	}

	now := requestcontext.Now(ctx)
	var done *models.ProofRequest
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		done, err = s.ledger.Fulfill(ctx, id, result, now)
		if err != nil {
			if errors.Is(err, sentinel.ErrInvalidState) || errors.Is(err, sentinel.ErrNotFound) {
				return noHandle(id, err)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record proof result")
		}
		if err := s.publisher.Emit(ctx, events.NewDecryptionFulfilled(id, now)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record decryption event")
		}
		if err := s.publisher.Emit(ctx, events.NewProofResult(done.Requester, id, string(done.Kind), result, now)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record proof result event")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrNoHandleFound) {
			s.metrics.IncRejected("no_handle")
		}
		return err
	}

	span.SetAttributes(attribute.Bool("proof.result", result))
	s.metrics.ObserveFulfilled(string(done.Kind), result, done.RequestedAt, now)
	s.logger.InfoContext(ctx, "proof fulfilled",
		"proof_request_id", id.String(),
		"user", done.Requester,
		"kind", done.Kind,
		"result", result,
	)
	return nil
}

// CancelPendingRequest lets the admin abandon a request the oracle never
// answered, once it has been pending for the configured stale period.
func (s *Service) CancelPendingRequest(ctx context.Context, caller domain.Address, id domain.RequestID) (err error) {
	ctx, span := s.tracer.Start(ctx, "proof.cancel", trace.WithAttributes(
		attribute.String("proof.request_id", id.String()),
	))
	defer func() { endSpan(span, err) }()

	if s.admin == nil {
		return dErrors.New(dErrors.CodeForbidden, "cancellation is not enabled")
	}
	if err := s.admin.RequireAdmin(ctx, caller); err != nil {
		return err
	}

	req, err := s.ledger.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return noHandle(id, err)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load proof request")
	}
	if !req.IsPending() {
		return noHandle(id, sentinel.ErrInvalidState)
	}
	now := requestcontext.Now(ctx)
	if !req.IsStale(now, s.staleAfter) {
		return dErrors.New(dErrors.CodeConflict, "request is not stale yet; retry after "+req.RequestedAt.Add(s.staleAfter).Format(time.RFC3339))
	}

	var cancelled *models.ProofRequest
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		cancelled, err = s.ledger.Cancel(ctx, id, now)
		if err != nil {
			if errors.Is(err, sentinel.ErrInvalidState) || errors.Is(err, sentinel.ErrNotFound) {
				return noHandle(id, err)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to cancel proof request")
		}
		return s.publisher.Emit(ctx, events.NewProofRequestCancelled(cancelled.Requester, id, string(cancelled.Kind), now))
	})
	if err != nil {
		return err
	}

	s.metrics.IncCancelled()
	s.logger.WarnContext(ctx, "stale proof request cancelled",
		"proof_request_id", id.String(),
		"user", cancelled.Requester,
		"admin", caller,
		"pending_for", now.Sub(cancelled.RequestedAt).String(),
	)
	return nil
}

func (s *Service) IsDecryptionPending(ctx context.Context) (bool, error) {
	_, err := s.ledger.Pending(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read pending slot")
	}
	return true, nil
}

// PendingRequest returns the request occupying the slot, or CodeNotFound.
func (s *Service) PendingRequest(ctx context.Context) (*models.ProofRequest, error) {
	req, err := s.ledger.Pending(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "no pending request")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read pending slot")
	}
	return req, nil
}

func (s *Service) LatestRequestID(ctx context.Context) (domain.RequestID, error) {
	id, err := s.ledger.LatestRequestID(ctx)
	if err != nil {
		return domain.RequestID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read latest request id")
	}
	return id, nil
}

func (s *Service) GetRequest(ctx context.Context, id domain.RequestID) (*models.ProofRequest, error) {
	req, err := s.ledger.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "proof request not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load proof request")
	}
	return req, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}
