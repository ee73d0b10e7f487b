package handler

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/thientu9562/identity-management/internal/kms"
	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

// maxMessageLength is generous for the three-line login message.
const maxMessageLength = 256

// TokenRequest is the HTTP request body for POST /auth/token.
type TokenRequest struct {
	Address   string        `json:"address"`
	Message   string        `json:"message"`
	Signature hexutil.Bytes `json:"signature"`

	address domain.Address
}

func (r *TokenRequest) Normalize() {
	r.Address = strings.TrimSpace(r.Address)
}

func (r *TokenRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	addr, err := domain.ParseAddress(r.Address)
	if err != nil {
		return err
	}
	r.address = addr
	if r.Message == "" || len(r.Message) > maxMessageLength {
		return dErrors.New(dErrors.CodeValidation, "message is required")
	}
	if len(r.Signature) != kms.SignatureLength {
		return dErrors.New(dErrors.CodeValidation, "signature must be 65 bytes")
	}
	return nil
}
