package kms

import "errors"

var (
	// ErrInvalidKMSSignatures is the boundary reason for a rejected decryption
	// result: malformed signatures, repeated signers or too few quorum members.
	ErrInvalidKMSSignatures = errors.New("InvalidKMSSignatures")

	ErrMalformedSignature = errors.New("malformed signature")
	ErrDuplicateSigner    = errors.New("duplicate quorum signer")
	ErrInvalidQuorum      = errors.New("invalid quorum")
)
