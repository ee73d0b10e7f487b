// Package oracle is the in-process development relayer. It plays the part of
// the external decryption oracle: it watches for proof requests, evaluates
// them, collects quorum signatures and submits the result.
package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thientu9562/identity-management/internal/events"
	idmodels "github.com/thientu9562/identity-management/internal/identity/models"
	"github.com/thientu9562/identity-management/internal/kms"
	proofmodels "github.com/thientu9562/identity-management/internal/proof/models"
	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

//go:generate mockgen -source=relayer.go -destination=mocks/mocks.go -package=mocks HandleSource,CountrySource,ProofService

const defaultProcessTimeout = 30 * time.Second

type Subscriber interface {
	Subscribe() (<-chan events.Event, func())
}

type HandleSource interface {
	Handles(ctx context.Context, user domain.Address) (idmodels.Handles, error)
}

type CountrySource interface {
	ValidCountryCodes(ctx context.Context) ([]domain.CountryCode, error)
}

type ProofService interface {
	PendingRequest(ctx context.Context) (*proofmodels.ProofRequest, error)
	HandleProofResult(ctx context.Context, id domain.RequestID, result bool, signatures [][]byte) error
}

type Relayer struct {
	feed      Subscriber
	handles   HandleSource
	countries CountrySource
	proofs    ProofService
	decryptor Decryptor
	signers   []*kms.Signer
	domain    kms.Domain
	timeout   time.Duration
	logger    *slog.Logger
}

type Option func(*Relayer)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relayer) {
		r.logger = logger
	}
}

// WithProcessTimeout bounds the work done for a single request.
func WithProcessTimeout(d time.Duration) Option {
	return func(r *Relayer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func New(
	feed Subscriber,
	handles HandleSource,
	countries CountrySource,
	proofs ProofService,
	decryptor Decryptor,
	signers []*kms.Signer,
	d kms.Domain,
	opts ...Option,
) *Relayer {
	r := &Relayer{
		feed:      feed,
		handles:   handles,
		countries: countries,
		proofs:    proofs,
		decryptor: decryptor,
		signers:   signers,
		domain:    d,
		timeout:   defaultProcessTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run serves proof requests until ctx is done. A request already pending at
// startup is served first.
func (r *Relayer) Run(ctx context.Context) error {
	feed, cancel := r.feed.Subscribe()
	defer cancel()

	pending, err := r.proofs.PendingRequest(ctx)
	switch {
	case err == nil:
		r.serve(ctx, pending.ID, pending.Requester, pending.Kind)
	case !dErrors.HasCode(err, dErrors.CodeNotFound):
		r.logger.ErrorContext(ctx, "oracle failed to read pending request", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-feed:
			if !ok {
				return nil
			}
			if e.Name != events.ProofRequested || e.User == nil || e.RequestID == nil {
				continue
			}
			kind, err := proofmodels.ParseKind(e.ProofType)
			if err != nil {
				r.logger.WarnContext(ctx, "oracle skipping unknown proof kind", "proof_type", e.ProofType)
				continue
			}
			r.serve(ctx, *e.RequestID, *e.User, kind)
		}
	}
}

func (r *Relayer) serve(ctx context.Context, id domain.RequestID, user domain.Address, kind proofmodels.Kind) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.Process(ctx, id, user, kind)
	if err != nil {
		r.logger.ErrorContext(ctx, "oracle failed to fulfil proof request",
			"proof_request_id", id.String(),
			"user", user,
			"kind", kind,
			"error", err,
		)
		return
	}
	r.logger.InfoContext(ctx, "oracle fulfilled proof request",
		"proof_request_id", id.String(),
		"kind", kind,
		"result", result,
	)
}

// Process evaluates one request, signs the result with every signer and
// submits it. It returns the submitted result.
func (r *Relayer) Process(ctx context.Context, id domain.RequestID, user domain.Address, kind proofmodels.Kind) (bool, error) {
	handles, err := r.handles.Handles(ctx, user)
	if err != nil {
		return false, fmt.Errorf("load handles: %w", err)
	}
	var countries []domain.CountryCode
	if kind == proofmodels.KindAgeOver21AndValidCountry {
		if countries, err = r.countries.ValidCountryCodes(ctx); err != nil {
			return false, fmt.Errorf("load country allow-list: %w", err)
		}
	}
	result, err := r.decryptor.Evaluate(ctx, kind, handles, countries)
	if err != nil {
		return false, fmt.Errorf("evaluate: %w", err)
	}
	sigs, err := r.sign(ctx, id, result)
	if err != nil {
		return false, err
	}
	if err := r.proofs.HandleProofResult(ctx, id, result, sigs); err != nil {
		return false, fmt.Errorf("submit result: %w", err)
	}
	return result, nil
}

// sign collects one signature per signer in parallel, preserving signer order.
func (r *Relayer) sign(ctx context.Context, id domain.RequestID, result bool) ([][]byte, error) {
	sigs := make([][]byte, len(r.signers))
	g, ctx := errgroup.WithContext(ctx)
	for i, signer := range r.signers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sig, err := signer.SignResult(r.domain, id, result)
			if err != nil {
				return fmt.Errorf("signer %s: %w", signer.Address(), err)
			}
			sigs[i] = sig
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sigs, nil
}
