package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("NoHandleFoundForRequestID")
	err := Wrap(cause, CodeNotFound, "request is not pending")

	require.ErrorIs(t, err, cause)
	assert.True(t, HasCode(err, CodeNotFound))
	assert.Equal(t, "request is not pending: NoHandleFoundForRequestID", err.Error())
}

func TestHasCodeUsesOutermostError(t *testing.T) {
	inner := New(CodeConflict, "slot busy")
	outer := Wrap(inner, CodeInternal, "allocate failed")

	assert.True(t, HasCode(outer, CodeInternal))
	assert.False(t, HasCode(outer, CodeConflict))
	assert.False(t, HasCode(nil, CodeInternal))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeForbidden, CodeOf(fmt.Errorf("ctx: %w", New(CodeForbidden, "admin only"))))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:   http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeInternal:     http.StatusInternalServerError,
		CodeRateLimited:  http.StatusTooManyRequests,
		Code("unknown"):  http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code %s", code)
	}
}
