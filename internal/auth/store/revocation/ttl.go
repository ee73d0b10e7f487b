// Package revocation is the token revocation list consulted by RequireAuth.
// A revoked JTI stays listed until the token would have expired anyway.
package revocation

import (
	"fmt"
	"time"

	"github.com/thientu9562/identity-management/pkg/platform/sentinel"
)

// Clock returns the current time; stores take it for testability.
type Clock func() time.Time

func validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive: %w", sentinel.ErrInvalidState)
	}
	return nil
}
