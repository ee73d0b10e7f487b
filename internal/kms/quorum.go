package kms

import (
	"fmt"
	"slices"

	"github.com/thientu9562/identity-management/pkg/domain"
)

// Quorum is the fixed set of KMS node addresses and the number of distinct
// members that must sign a decryption result.
type Quorum struct {
	signers   []domain.Address
	members   map[domain.Address]struct{}
	threshold int
}

// NewQuorum validates 1 <= threshold <= len(signers), rejects the zero
// address and repeated members.
func NewQuorum(signers []domain.Address, threshold int) (*Quorum, error) {
	if len(signers) == 0 {
		return nil, fmt.Errorf("%w: no signers", ErrInvalidQuorum)
	}
	if threshold < 1 || threshold > len(signers) {
		return nil, fmt.Errorf("%w: threshold %d outside [1, %d]", ErrInvalidQuorum, threshold, len(signers))
	}
	members := make(map[domain.Address]struct{}, len(signers))
	for _, s := range signers {
		if s.IsZero() {
			return nil, fmt.Errorf("%w: zero address signer", ErrInvalidQuorum)
		}
		if _, dup := members[s]; dup {
			return nil, fmt.Errorf("%w: signer %s listed twice", ErrInvalidQuorum, s)
		}
		members[s] = struct{}{}
	}
	return &Quorum{
		signers:   slices.Clone(signers),
		members:   members,
		threshold: threshold,
	}, nil
}

func (q *Quorum) Threshold() int { return q.threshold }

func (q *Quorum) Signers() []domain.Address { return slices.Clone(q.signers) }

func (q *Quorum) Contains(addr domain.Address) bool {
	_, ok := q.members[addr]
	return ok
}
