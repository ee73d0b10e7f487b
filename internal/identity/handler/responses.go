package handler

import "github.com/thientu9562/identity-management/pkg/domain"

// RegistrationResponse answers both registration and lookup.
type RegistrationResponse struct {
	User       domain.Address `json:"user"`
	Registered bool           `json:"registered"`
}
