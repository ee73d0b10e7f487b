package oracle

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/thientu9562/identity-management/internal/identity/models"
)

// Development handle layout. Bytes 0..21 are a random nonce, bytes 22..29 the
// masked plaintext, byte 30 the type tag and byte 31 the layout version.
const (
	nonceLen     = 22
	valueOffset  = 22
	devVersion   = 1
	versionIndex = 31
	typeIndex    = 30
)

// DevCipher stands in for the FHE coprocessor in development. A handle
// carries its own value masked with keccak256(key || nonce), so anyone holding
// the key can decrypt it. Values wider than 64 bits keep their low 64 bits.
type DevCipher struct {
	key []byte
}

func NewDevCipher(key []byte) (*DevCipher, error) {
	if len(key) < 16 {
		return nil, fmt.Errorf("dev cipher key must be at least 16 bytes")
	}
	return &DevCipher{key: append([]byte(nil), key...)}, nil
}

func (c *DevCipher) Encrypt(t models.EncryptedType, value uint64) (models.CiphertextHandle, error) {
	var h models.CiphertextHandle
	if _, err := rand.Read(h[:nonceLen]); err != nil {
		return h, fmt.Errorf("read nonce: %w", err)
	}
	binary.BigEndian.PutUint64(h[valueOffset:typeIndex], value^c.mask(h[:nonceLen]))
	h[typeIndex] = byte(t)
	h[versionIndex] = devVersion
	return h, nil
}

func (c *DevCipher) Decrypt(h models.CiphertextHandle) (uint64, error) {
	if h[versionIndex] != devVersion {
		return 0, fmt.Errorf("handle %s was not produced by the development cipher", h)
	}
	return binary.BigEndian.Uint64(h[valueOffset:typeIndex]) ^ c.mask(h[:nonceLen]), nil
}

func (c *DevCipher) mask(nonce []byte) uint64 {
	d := sha3.NewLegacyKeccak256()
	d.Write(c.key)
	d.Write(nonce)
	return binary.BigEndian.Uint64(d.Sum(nil)[:8])
}
