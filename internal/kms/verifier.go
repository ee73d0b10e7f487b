package kms

import (
	"errors"
	"fmt"
	"slices"

	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

// Verifier checks that a decryption result is signed by enough distinct
// members of the configured quorum. It holds no mutable state.
type Verifier struct {
	quorum *Quorum
	domain Domain
}

func NewVerifier(quorum *Quorum, d Domain) *Verifier {
	return &Verifier{quorum: quorum, domain: d}
}

// Digest exposes the message the quorum signs for (requestID, decryptedInput).
func (v *Verifier) Digest(requestID domain.RequestID, decryptedInput bool) [32]byte {
	return v.domain.Digest(requestID, decryptedInput)
}

func (v *Verifier) Quorum() *Quorum { return v.quorum }

// CountValid returns the number of distinct quorum members that signed
// digest. Signatures from addresses outside the quorum do not count. A
// malformed signature or a quorum member signing twice fails the whole set.
func (v *Verifier) CountValid(digest [32]byte, signatures [][]byte) (int, error) {
	recovered := make([]domain.Address, 0, len(signatures))
	for i, sig := range signatures {
		addr, err := RecoverSigner(digest, sig)
		if err != nil {
			return 0, fmt.Errorf("signature %d: %w", i, err)
		}
		if v.quorum.Contains(addr) {
			recovered = append(recovered, addr)
		}
	}

	slices.SortFunc(recovered, domain.Address.Compare)
	for i := 1; i < len(recovered); i++ {
		if recovered[i] == recovered[i-1] {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateSigner, recovered[i])
		}
	}
	return len(recovered), nil
}

// Verify fails with InvalidKMSSignatures unless at least threshold distinct
// quorum members signed (requestID, decryptedInput).
func (v *Verifier) Verify(requestID domain.RequestID, decryptedInput bool, signatures [][]byte) error {
	count, err := v.CountValid(v.Digest(requestID, decryptedInput), signatures)
	if err != nil {
		return dErrors.Wrap(errors.Join(ErrInvalidKMSSignatures, err), dErrors.CodeUnauthorized,
			"InvalidKMSSignatures: "+err.Error())
	}
	if count < v.quorum.Threshold() {
		return dErrors.Wrap(ErrInvalidKMSSignatures, dErrors.CodeUnauthorized,
			fmt.Sprintf("InvalidKMSSignatures: %d of %d required signatures", count, v.quorum.Threshold()))
	}
	return nil
}
