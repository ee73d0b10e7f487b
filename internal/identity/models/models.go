package models

import (
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

// ErrUnsupportedHandleType is the boundary reason for a handle whose encrypted
// type does not match its attribute slot.
var ErrUnsupportedHandleType = errors.New("UnsupportedHandleType")

// ErrHandlesAlreadySaved is the boundary reason for registering a user twice.
var ErrHandlesAlreadySaved = errors.New("HandlesAlreadySavedForRequestID")

// AttributeKind names one of the five encrypted identity slots.
type AttributeKind int

const (
	AttributeAge AttributeKind = iota
	AttributeIsStudent
	AttributePassportHash
	AttributeCity
	AttributeCountryCode

	// AttributeCount is the number of slots every registration fills.
	AttributeCount = 5
)

var attributeNames = [AttributeCount]string{"age", "is_student", "passport_hash", "city", "country_code"}

func (k AttributeKind) String() string {
	if k < 0 || int(k) >= AttributeCount {
		return "unknown"
	}
	return attributeNames[k]
}

// Kinds lists every slot in canonical order.
func Kinds() []AttributeKind {
	return []AttributeKind{AttributeAge, AttributeIsStudent, AttributePassportHash, AttributeCity, AttributeCountryCode}
}

// EncryptedType is the ciphertext type tag carried in a handle.
type EncryptedType byte

const (
	TypeBool    EncryptedType = 0
	TypeUint8   EncryptedType = 2
	TypeUint16  EncryptedType = 3
	TypeUint256 EncryptedType = 8
)

func (t EncryptedType) String() string {
	switch t {
	case TypeBool:
		return "ebool"
	case TypeUint8:
		return "euint8"
	case TypeUint16:
		return "euint16"
	case TypeUint256:
		return "euint256"
	default:
		return "unknown"
	}
}

// ExpectedType is the encrypted type each slot must hold.
func (k AttributeKind) ExpectedType() EncryptedType {
	switch k {
	case AttributeIsStudent:
		return TypeBool
	case AttributePassportHash:
		return TypeUint256
	case AttributeCity:
		return TypeUint16
	default:
		return TypeUint8
	}
}

// typeTagIndex is the handle byte that carries the encrypted type.
const typeTagIndex = 30

// CiphertextHandle is the opaque 32-byte reference to an encrypted value.
type CiphertextHandle [32]byte

// ParseHandle decodes a 0x-prefixed 32-byte hex handle.
func ParseHandle(s string) (CiphertextHandle, error) {
	s = strings.TrimSpace(s)
	raw, ok := strings.CutPrefix(s, "0x")
	if !ok || len(raw) != 64 {
		return CiphertextHandle{}, dErrors.New(dErrors.CodeInvalidInput, "handle must be 0x-prefixed 32-byte hex")
	}
	var h CiphertextHandle
	if _, err := hex.Decode(h[:], []byte(raw)); err != nil {
		return CiphertextHandle{}, dErrors.New(dErrors.CodeInvalidInput, "handle must be 0x-prefixed 32-byte hex")
	}
	return h, nil
}

func (h CiphertextHandle) Type() EncryptedType { return EncryptedType(h[typeTagIndex]) }

func (h CiphertextHandle) String() string { return "0x" + hex.EncodeToString(h[:]) }

func (h CiphertextHandle) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

func (h *CiphertextHandle) UnmarshalText(text []byte) error {
	parsed, err := ParseHandle(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Input is a handle plus the proof binding it to its submitter.
type Input struct {
	Handle CiphertextHandle
	Proof  []byte
}

// Inputs holds one Input per slot, indexed by AttributeKind.
type Inputs [AttributeCount]Input

// Handles holds one stored handle per slot, indexed by AttributeKind.
type Handles [AttributeCount]CiphertextHandle

func (h Handles) Get(k AttributeKind) CiphertextHandle { return h[k] }

// Identity is a registered user's encrypted attribute set. It is written once.
type Identity struct {
	User         domain.Address
	Handles      Handles
	RegisteredAt time.Time
}

// CheckTypes verifies each handle carries the type its slot requires.
func (in Inputs) CheckTypes() error {
	for _, k := range Kinds() {
		if got, want := in[k].Handle.Type(), k.ExpectedType(); got != want {
			return dErrors.Wrap(ErrUnsupportedHandleType, dErrors.CodeValidation,
				"UnsupportedHandleType: "+k.String()+" expects "+want.String()+", got "+got.String())
		}
	}
	return nil
}

func (in Inputs) Handles() Handles {
	var out Handles
	for i := range in {
		out[i] = in[i].Handle
	}
	return out
}
