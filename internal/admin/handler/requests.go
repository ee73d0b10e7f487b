package handler

import (
	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

// TransferAdminRequest is the HTTP request body for POST /admin/transfer.
type TransferAdminRequest struct {
	NewAdmin *domain.Address `json:"new_admin"`
}

func (r *TransferAdminRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.NewAdmin == nil || r.NewAdmin.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "new_admin is required")
	}
	return nil
}

// AddCountryCodeRequest accepts the code by number or by name ("EU").
type AddCountryCodeRequest struct {
	CountryCode *domain.CountryCode `json:"country_code"`
}

func (r *AddCountryCodeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.CountryCode == nil {
		return dErrors.New(dErrors.CodeValidation, "country_code is required")
	}
	return nil
}
