package kms

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/thientu9562/identity-management/pkg/domain"
)

// Signer holds one KMS node key. The service itself never signs results; the
// development oracle and tests do.
type Signer struct {
	key  *ecdsa.PrivateKey
	addr domain.Address
}

// NewSigner loads a hex encoded secp256k1 private key.
func NewSigner(hexKey string) (*Signer, error) {
	key, err := gethcrypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse signer key: %w", err)
	}
	return newSigner(key), nil
}

// GenerateSigner creates a signer with a fresh random key.
func GenerateSigner() (*Signer, error) {
	key, err := gethcrypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return newSigner(key), nil
}

func newSigner(key *ecdsa.PrivateKey) *Signer {
	return &Signer{key: key, addr: domain.Address(gethcrypto.PubkeyToAddress(key.PublicKey))}
}

func (s *Signer) Address() domain.Address { return s.addr }

// Sign produces a 65-byte R || S || V signature with V in {27, 28}.
func (s *Signer) Sign(digest [32]byte) ([]byte, error) {
	sig, err := gethcrypto.Sign(digest[:], s.key)
	if err != nil {
		return nil, err
	}
	sig[64] += 27
	return sig, nil
}

// SignResult signs the digest d assigns to (requestID, decryptedInput).
func (s *Signer) SignResult(d Domain, requestID domain.RequestID, decryptedInput bool) ([]byte, error) {
	return s.Sign(d.Digest(requestID, decryptedInput))
}
