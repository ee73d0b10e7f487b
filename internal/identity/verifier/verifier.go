// Package verifier checks the input proofs that bind a ciphertext handle to
// the account that submitted it.
package verifier

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/thientu9562/identity-management/internal/identity/models"
	"github.com/thientu9562/identity-management/internal/kms"
	"github.com/thientu9562/identity-management/pkg/domain"
)

// ErrInvalidInputProof reports a proof that does not bind handle to user.
var ErrInvalidInputProof = errors.New("invalid input proof")

// SignedInputVerifier accepts a proof when it is a signature by the
// configured coprocessor over keccak256(handle || user || kind).
type SignedInputVerifier struct {
	coprocessor domain.Address
}

func NewSignedInputVerifier(coprocessor domain.Address) *SignedInputVerifier {
	return &SignedInputVerifier{coprocessor: coprocessor}
}

func (v *SignedInputVerifier) Verify(_ context.Context, user domain.Address, kind models.AttributeKind, handle models.CiphertextHandle, proof []byte) error {
	signer, err := kms.RecoverSigner(InputDigest(user, kind, handle), proof)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidInputProof, kind, err)
	}
	if signer != v.coprocessor {
		return fmt.Errorf("%w: %s: signed by %s", ErrInvalidInputProof, kind, signer)
	}
	return nil
}

// AllowAllVerifier accepts any proof. Development only.
type AllowAllVerifier struct{}

func (AllowAllVerifier) Verify(context.Context, domain.Address, models.AttributeKind, models.CiphertextHandle, []byte) error {
	return nil
}

// InputDigest is the message a coprocessor signs to attest an input.
func InputDigest(user domain.Address, kind models.AttributeKind, handle models.CiphertextHandle) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(handle[:])
	h.Write(user[:])
	h.Write([]byte{byte(kind)})
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// SignInput produces the proof SignedInputVerifier expects. Used by the
// development tooling that stands in for the coprocessor.
func SignInput(signer *kms.Signer, user domain.Address, kind models.AttributeKind, handle models.CiphertextHandle) ([]byte, error) {
	return signer.Sign(InputDigest(user, kind, handle))
}
