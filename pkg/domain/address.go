package domain

import (
	"bytes"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

// Address identifies a user, the admin, or a KMS signer by its 20-byte account
// address. The zero address is a valid value but never a valid actor; callers
// that need an actor check IsZero.
type Address common.Address

// ParseAddress constructs an Address from external input.
//
// Errors: returns CodeInvalidInput when the value is not a 0x-prefixed,
// 40 hex digit address.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address cannot be empty")
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address must be 0x-prefixed")
	}
	if !common.IsHexAddress(s) {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "invalid address format")
	}
	return Address(common.HexToAddress(s)), nil
}

// String returns the EIP-55 checksummed hex form.
func (a Address) String() string {
	return common.Address(a).Hex()
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) Bytes() []byte {
	return common.Address(a).Bytes()
}

// Compare orders addresses bytewise.
func (a Address) Compare(b Address) int {
	return bytes.Compare(a[:], b[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
