package models

import (
	"errors"
	"time"

	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

// Boundary reasons. Services wrap these with a code; the error text carries
// the reason name first.
var (
	ErrNoHandleFound         = errors.New("NoHandleFoundForRequestID")
	ErrIdentityNotRegistered = errors.New("IdentityNotRegistered")
	ErrDecryptionPending     = errors.New("DecryptionPending")
)

// Kind is the statement a proof request asks the oracle to evaluate.
type Kind string

const (
	KindAgeOver18                Kind = "AgeOver18"
	KindAgeOver21AndValidCountry Kind = "AgeOver21AndValidCountry"
)

func (k Kind) IsValid() bool {
	return k == KindAgeOver18 || k == KindAgeOver21AndValidCountry
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown proof kind")
	}
	return k, nil
}

// Status of a proof request. Pending is the only non-terminal status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusFulfilled, StatusCancelled:
		return st, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown proof status")
	}
}

// ProofRequest is one entry in the proof ledger.
type ProofRequest struct {
	ID          domain.RequestID
	Requester   domain.Address
	Kind        Kind
	Status      Status
	Result      *bool
	RequestedAt time.Time
	ResolvedAt  *time.Time
}

// NewPending builds a freshly allocated request.
func NewPending(id domain.RequestID, requester domain.Address, kind Kind, at time.Time) *ProofRequest {
	return &ProofRequest{
		ID:          id,
		Requester:   requester,
		Kind:        kind,
		Status:      StatusPending,
		RequestedAt: at,
	}
}

func (r *ProofRequest) IsPending() bool {
	return r.Status == StatusPending
}

// IsStale reports whether a pending request has waited longer than after.
func (r *ProofRequest) IsStale(now time.Time, after time.Duration) bool {
	return r.IsPending() && now.Sub(r.RequestedAt) >= after
}

// Fulfill records the decrypted result. Only a pending request accepts one.
func (r *ProofRequest) Fulfill(result bool, at time.Time) error {
	if !r.IsPending() {
		return dErrors.New(dErrors.CodeInvariantViolation, "request "+r.ID.String()+" is "+string(r.Status))
	}
	r.Status = StatusFulfilled
	r.Result = &result
	r.ResolvedAt = &at
	return nil
}

// Cancel abandons a pending request. It can never be fulfilled afterwards.
func (r *ProofRequest) Cancel(at time.Time) error {
	if !r.IsPending() {
		return dErrors.New(dErrors.CodeInvariantViolation, "request "+r.ID.String()+" is "+string(r.Status))
	}
	r.Status = StatusCancelled
	r.ResolvedAt = &at
	return nil
}

// Clone returns a deep copy so stores never share mutable state with callers.
func (r *ProofRequest) Clone() *ProofRequest {
	c := *r
	if r.Result != nil {
		v := *r.Result
		c.Result = &v
	}
	if r.ResolvedAt != nil {
		v := *r.ResolvedAt
		c.ResolvedAt = &v
	}
	return &c
}
