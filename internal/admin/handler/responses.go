package handler

import "github.com/thientu9562/identity-management/pkg/domain"

type AdminResponse struct {
	Admin domain.Address `json:"admin"`
}

// CountryCodesResponse lists the allow-list with names for display.
type CountryCodesResponse struct {
	CountryCodes []CountryCodeResponse `json:"country_codes"`
	Total        int                   `json:"total"`
}

type CountryCodeResponse struct {
	Code domain.CountryCode `json:"code"`
	Name string             `json:"name"`
}

func FromCountryCodes(codes []domain.CountryCode) *CountryCodesResponse {
	resp := &CountryCodesResponse{
		CountryCodes: make([]CountryCodeResponse, 0, len(codes)),
		Total:        len(codes),
	}
	for _, c := range codes {
		resp.CountryCodes = append(resp.CountryCodes, CountryCodeResponse{Code: c, Name: c.String()})
	}
	return resp
}
