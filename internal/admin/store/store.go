// Package store persists the admin cell and the valid country allow-list.
//
// Error contract:
//   - Admin returns ErrNoAdmin (wraps sentinel.ErrNotFound) before Init
//   - Transfer returns ErrAdminChanged (wraps sentinel.ErrInvalidState) when the
//     current admin is not the expected one
//   - Init and AddCountryCode never overwrite; they report whether they inserted
package store

import (
	"fmt"

	"github.com/thientu9562/identity-management/pkg/platform/sentinel"
)

var (
	ErrNoAdmin      = fmt.Errorf("admin not set: %w", sentinel.ErrNotFound)
	ErrAdminChanged = fmt.Errorf("admin changed: %w", sentinel.ErrInvalidState)
)
