package oracle

import (
	"context"
	"fmt"
	"slices"

	idmodels "github.com/thientu9562/identity-management/internal/identity/models"
	proofmodels "github.com/thientu9562/identity-management/internal/proof/models"
	"github.com/thientu9562/identity-management/pkg/domain"
)

// Age thresholds are strict: "over 18" means 19 or older.
const (
	adultAge    = 18
	drinkingAge = 21
)

// Decryptor evaluates a proof kind over a user's handles and answers with
// the single boolean the quorum signs.
type Decryptor interface {
	Evaluate(ctx context.Context, kind proofmodels.Kind, handles idmodels.Handles, validCountries []domain.CountryCode) (bool, error)
}

// DevDecryptor evaluates proofs by decrypting handles with a DevCipher.
type DevDecryptor struct {
	cipher *DevCipher
}

func NewDevDecryptor(cipher *DevCipher) *DevDecryptor {
	return &DevDecryptor{cipher: cipher}
}

func (d *DevDecryptor) Evaluate(_ context.Context, kind proofmodels.Kind, handles idmodels.Handles, validCountries []domain.CountryCode) (bool, error) {
	age, err := d.cipher.Decrypt(handles.Get(idmodels.AttributeAge))
	if err != nil {
		return false, fmt.Errorf("decrypt age: %w", err)
	}
	switch kind {
	case proofmodels.KindAgeOver18:
		return age > adultAge, nil
	case proofmodels.KindAgeOver21AndValidCountry:
		if age <= drinkingAge {
			return false, nil
		}
		code, err := d.cipher.Decrypt(handles.Get(idmodels.AttributeCountryCode))
		if err != nil {
			return false, fmt.Errorf("decrypt country code: %w", err)
		}
		if code > 255 {
			return false, nil
		}
		return slices.Contains(validCountries, domain.CountryCode(code)), nil
	default:
		return false, fmt.Errorf("unknown proof kind %q", kind)
	}
}
