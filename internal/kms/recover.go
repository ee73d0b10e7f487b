package kms

import (
	"fmt"
	"math/big"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/thientu9562/identity-management/pkg/domain"
)

// SignatureLength is the compact R || S || V encoding.
const SignatureLength = 65

// RecoverSigner returns the address whose key produced sig over digest.
// V may be 0/1 or 27/28; S must be in the lower half of the curve order.
func RecoverSigner(digest [32]byte, sig []byte) (domain.Address, error) {
	if len(sig) != SignatureLength {
		return domain.Address{}, fmt.Errorf("%w: length %d", ErrMalformedSignature, len(sig))
	}
	v := sig[64]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return domain.Address{}, fmt.Errorf("%w: recovery id %d", ErrMalformedSignature, sig[64])
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !gethcrypto.ValidateSignatureValues(v, r, s, true) {
		return domain.Address{}, fmt.Errorf("%w: r/s out of range", ErrMalformedSignature)
	}

	normalized := make([]byte, SignatureLength)
	copy(normalized, sig[:64])
	normalized[64] = v

	pub, err := gethcrypto.SigToPub(digest[:], normalized)
	if err != nil {
		return domain.Address{}, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	return domain.Address(gethcrypto.PubkeyToAddress(*pub)), nil
}
