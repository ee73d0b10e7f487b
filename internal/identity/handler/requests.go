package handler

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/thientu9562/identity-management/internal/identity/models"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

// maxProofBytes bounds a single input proof.
const maxProofBytes = 4096

// EncryptedInput is one ciphertext handle and its input proof.
type EncryptedInput struct {
	Handle string        `json:"handle"`
	Proof  hexutil.Bytes `json:"proof"`
}

// RegisterIdentityRequest is the HTTP request body for POST /identity.
type RegisterIdentityRequest struct {
	Age          EncryptedInput `json:"age"`
	IsStudent    EncryptedInput `json:"is_student"`
	PassportHash EncryptedInput `json:"passport_hash"`
	City         EncryptedInput `json:"city"`
	CountryCode  EncryptedInput `json:"country_code"`

	parsed models.Inputs
}

func (r *RegisterIdentityRequest) slots() [models.AttributeCount]*EncryptedInput {
	return [models.AttributeCount]*EncryptedInput{
		models.AttributeAge:          &r.Age,
		models.AttributeIsStudent:    &r.IsStudent,
		models.AttributePassportHash: &r.PassportHash,
		models.AttributeCity:         &r.City,
		models.AttributeCountryCode:  &r.CountryCode,
	}
}

func (r *RegisterIdentityRequest) Normalize() {
	for _, in := range r.slots() {
		in.Handle = strings.ToLower(strings.TrimSpace(in.Handle))
	}
}

// Validate parses every handle. Type tags are checked by the service.
func (r *RegisterIdentityRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	for kind, in := range r.slots() {
		name := models.AttributeKind(kind).String()
		if in.Handle == "" {
			return dErrors.New(dErrors.CodeValidation, name+".handle is required")
		}
		if len(in.Proof) == 0 {
			return dErrors.New(dErrors.CodeValidation, name+".proof is required")
		}
		if len(in.Proof) > maxProofBytes {
			return dErrors.New(dErrors.CodeValidation, name+".proof is too large")
		}
		handle, err := models.ParseHandle(in.Handle)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, name+".handle must be 0x-prefixed 32-byte hex")
		}
		r.parsed[kind] = models.Input{Handle: handle, Proof: in.Proof}
	}
	return nil
}

func (r *RegisterIdentityRequest) Inputs() models.Inputs {
	return r.parsed
}
