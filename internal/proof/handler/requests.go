package handler

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

// maxSignatures bounds the submitted signature set; quorums are small.
const maxSignatures = 64

// ProofResultRequest is the HTTP request body for POST /proofs/{requestId}/result.
// Signatures stay as submitted: whether one is well formed is decided by the
// quorum check, after the request is known to be pending.
type ProofResultRequest struct {
	Result     *bool    `json:"result"`
	Signatures []string `json:"signatures"`
}

func (r *ProofResultRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Result == nil {
		return dErrors.New(dErrors.CodeValidation, "result is required")
	}
	if len(r.Signatures) > maxSignatures {
		return dErrors.New(dErrors.CodeValidation, "too many signatures")
	}
	return nil
}

// RawSignatures decodes the hex signatures. An entry that is not valid hex
// becomes an empty signature, which the quorum check rejects as malformed.
func (r *ProofResultRequest) RawSignatures() [][]byte {
	out := make([][]byte, len(r.Signatures))
	for i, sig := range r.Signatures {
		raw, err := hexutil.Decode(sig)
		if err != nil {
			raw = []byte{}
		}
		out[i] = raw
	}
	return out
}
