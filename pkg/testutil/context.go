package testutil

import (
	"net/http"

	"github.com/thientu9562/identity-management/pkg/domain"
	"github.com/thientu9562/identity-management/pkg/requestcontext"
)

// WithCaller adds an authenticated caller to the request context, as the
// auth middleware would.
func WithCaller(req *http.Request, caller domain.Address) *http.Request {
	return req.WithContext(requestcontext.WithCaller(req.Context(), caller))
}

// MustAddress parses a hex address or panics. For fixtures only.
func MustAddress(s string) domain.Address {
	addr, err := domain.ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}
