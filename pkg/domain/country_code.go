package domain

import (
	"encoding/json"
	"strings"

	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

// CountryCode is the small enum stored (encrypted) in a user's country
// attribute and, in clear, in the admin-managed allow-list.
type CountryCode uint8

const (
	CountryCodeUS CountryCode = 0
	CountryCodeCA CountryCode = 1
	CountryCodeEU CountryCode = 2
)

var countryCodeNames = map[CountryCode]string{
	CountryCodeUS: "US",
	CountryCodeCA: "CA",
	CountryCodeEU: "EU",
}

// ParseCountryCode accepts either the numeric value or the short name.
func ParseCountryCode(s string) (CountryCode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for code, name := range countryCodeNames {
		if s == name {
			return code, nil
		}
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		code := CountryCode(s[0] - '0')
		if code.IsValid() {
			return code, nil
		}
	}
	return 0, dErrors.New(dErrors.CodeInvalidInput, "unknown country code")
}

// CountryCodeFromInt validates a numeric wire value.
func CountryCodeFromInt(v int) (CountryCode, error) {
	if v < 0 || v > 255 || !CountryCode(v).IsValid() {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "unknown country code")
	}
	return CountryCode(v), nil
}

func (c CountryCode) IsValid() bool {
	_, ok := countryCodeNames[c]
	return ok
}

func (c CountryCode) String() string {
	if name, ok := countryCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// UnmarshalJSON accepts the numeric wire value or the short name.
func (c *CountryCode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseCountryCode(name)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "country code must be a number or a name")
	}
	parsed, err := CountryCodeFromInt(n)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
