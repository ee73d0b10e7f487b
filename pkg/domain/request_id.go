package domain

import (
	"strings"

	"github.com/holiman/uint256"

	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

// maxRequestIDDigits is the decimal width of 2^256-1.
const maxRequestIDDigits = 78

// RequestID identifies a proof request. Ids are allocated by the ledger as a
// strictly increasing uint256 sequence starting at 1; zero means "none".
type RequestID uint256.Int

// NewRequestID builds a RequestID from a uint64.
func NewRequestID(n uint64) RequestID {
	return RequestID(*uint256.NewInt(n))
}

// ParseRequestID constructs a RequestID from its decimal form.
//
// Errors: returns CodeInvalidInput for empty, non-decimal or out of range input.
func ParseRequestID(s string) (RequestID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RequestID{}, dErrors.New(dErrors.CodeInvalidInput, "request id cannot be empty")
	}
	if len(s) > maxRequestIDDigits {
		return RequestID{}, dErrors.New(dErrors.CodeInvalidInput, "request id out of range")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return RequestID{}, dErrors.New(dErrors.CodeInvalidInput, "request id must be decimal")
		}
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return RequestID{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "request id out of range")
	}
	return RequestID(*v), nil
}

func (r RequestID) int() *uint256.Int {
	v := uint256.Int(r)
	return &v
}

// String returns the decimal form.
func (r RequestID) String() string {
	return r.int().Dec()
}

func (r RequestID) IsZero() bool {
	return r.int().IsZero()
}

// Next returns r+1.
func (r RequestID) Next() RequestID {
	var n uint256.Int
	n.AddUint64(r.int(), 1)
	return RequestID(n)
}

// Cmp returns -1, 0 or +1.
func (r RequestID) Cmp(o RequestID) int {
	return r.int().Cmp(o.int())
}

// Bytes32 returns the big-endian 32-byte word, as used in signed digests.
func (r RequestID) Bytes32() [32]byte {
	return r.int().Bytes32()
}

func (r RequestID) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RequestID) UnmarshalText(text []byte) error {
	parsed, err := ParseRequestID(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
