// Package events defines the observable notifications emitted after each
// state change, and the ordered log that stores and fans them out.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/thientu9562/identity-management/pkg/domain"
)

// Name identifies an event kind.
type Name string

const (
	IdentityRegistered    Name = "IdentityRegistered"
	ProofRequested        Name = "ProofRequested"
	DecryptionFulfilled   Name = "DecryptionFulfilled"
	ProofResult           Name = "ProofResult"
	AdminTransferred      Name = "AdminTransferred"
	ValidCountryCodeAdded Name = "ValidCountryCodeAdded"
	ProofRequestCancelled Name = "ProofRequestCancelled"
)

// Event is one notification. Seq is assigned by the store when the event is
// appended and orders the log; ID is stable across sinks for deduplication.
// Only the payload fields relevant to Name are set.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Seq       uint64    `json:"seq"`
	Name      Name      `json:"name"`
	Timestamp time.Time `json:"timestamp"`

	User        *domain.Address     `json:"user,omitempty"`
	RequestID   *domain.RequestID   `json:"request_id,omitempty"`
	ProofType   string              `json:"proof_type,omitempty"`
	Result      *bool               `json:"result,omitempty"`
	OldAdmin    *domain.Address     `json:"old_admin,omitempty"`
	NewAdmin    *domain.Address     `json:"new_admin,omitempty"`
	CountryCode *domain.CountryCode `json:"country_code,omitempty"`
}

// Key partitions the event stream: the user when there is one, otherwise the
// event name.
func (e Event) Key() string {
	switch {
	case e.User != nil:
		return e.User.String()
	case e.NewAdmin != nil:
		return e.NewAdmin.String()
	default:
		return string(e.Name)
	}
}

// Publisher accepts events emitted by services.
type Publisher interface {
	Emit(ctx context.Context, e Event) error
}

func newEvent(name Name, at time.Time) Event {
	return Event{ID: uuid.New(), Name: name, Timestamp: at.UTC()}
}

func NewIdentityRegistered(user domain.Address, at time.Time) Event {
	e := newEvent(IdentityRegistered, at)
	e.User = &user
	return e
}

func NewProofRequested(user domain.Address, id domain.RequestID, proofType string, at time.Time) Event {
	e := newEvent(ProofRequested, at)
	e.User = &user
	e.RequestID = &id
	e.ProofType = proofType
	return e
}

func NewDecryptionFulfilled(id domain.RequestID, at time.Time) Event {
	e := newEvent(DecryptionFulfilled, at)
	e.RequestID = &id
	return e
}

func NewProofResult(user domain.Address, id domain.RequestID, proofType string, result bool, at time.Time) Event {
	e := newEvent(ProofResult, at)
	e.User = &user
	e.RequestID = &id
	e.ProofType = proofType
	e.Result = &result
	return e
}

func NewProofRequestCancelled(user domain.Address, id domain.RequestID, proofType string, at time.Time) Event {
	e := newEvent(ProofRequestCancelled, at)
	e.User = &user
	e.RequestID = &id
	e.ProofType = proofType
	return e
}

func NewAdminTransferred(oldAdmin, newAdmin domain.Address, at time.Time) Event {
	e := newEvent(AdminTransferred, at)
	e.OldAdmin = &oldAdmin
	e.NewAdmin = &newAdmin
	return e
}

func NewValidCountryCodeAdded(code domain.CountryCode, at time.Time) Event {
	e := newEvent(ValidCountryCodeAdded, at)
	e.CountryCode = &code
	return e
}
