package kms

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/thientu9562/identity-management/pkg/domain"
)

const (
	domainType = "EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"
	resultType = "DecryptionResult(uint256 requestId,bool decryptedInput)"
)

var (
	domainTypeHash = keccak([]byte(domainType))
	resultTypeHash = keccak([]byte(resultType))
)

// Domain binds signatures to one deployment so results cannot be replayed
// against another chain or contract.
type Domain struct {
	Name              string
	Version           string
	ChainID           uint64
	VerifyingContract domain.Address
}

// DefaultDomain returns the signing domain used by the service.
func DefaultDomain(chainID uint64, verifyingContract domain.Address) Domain {
	return Domain{
		Name:              "IdentityManagement",
		Version:           "1",
		ChainID:           chainID,
		VerifyingContract: verifyingContract,
	}
}

// Separator is keccak256 of the ABI-encoded domain struct.
func (d Domain) Separator() [32]byte {
	var chainID [32]byte
	binary.BigEndian.PutUint64(chainID[24:], d.ChainID)
	var contract [32]byte
	copy(contract[12:], d.VerifyingContract[:])

	name := keccak([]byte(d.Name))
	version := keccak([]byte(d.Version))
	return keccak(domainTypeHash[:], name[:], version[:], chainID[:], contract[:])
}

// Digest is the 32-byte message KMS nodes sign for a decryption result:
// keccak256(0x19 0x01 || domainSeparator || structHash).
func (d Domain) Digest(requestID domain.RequestID, decryptedInput bool) [32]byte {
	id := requestID.Bytes32()
	var flag [32]byte
	if decryptedInput {
		flag[31] = 1
	}
	structHash := keccak(resultTypeHash[:], id[:], flag[:])
	sep := d.Separator()
	return keccak([]byte{0x19, 0x01}, sep[:], structHash[:])
}

func keccak(parts ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}
