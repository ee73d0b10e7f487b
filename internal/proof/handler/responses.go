package handler

import (
	"time"

	"github.com/thientu9562/identity-management/internal/proof/models"
	"github.com/thientu9562/identity-management/pkg/domain"
)

type RequestIDResponse struct {
	RequestID domain.RequestID `json:"request_id"`
}

type PendingResponse struct {
	Pending bool             `json:"pending"`
	Request *RequestResponse `json:"request,omitempty"`
}

type RequestResponse struct {
	RequestID   domain.RequestID `json:"request_id"`
	Requester   domain.Address   `json:"requester"`
	ProofType   models.Kind      `json:"proof_type"`
	Status      models.Status    `json:"status"`
	Result      *bool            `json:"result,omitempty"`
	RequestedAt time.Time        `json:"requested_at"`
	ResolvedAt  *time.Time       `json:"resolved_at,omitempty"`
}

func FromRequest(r *models.ProofRequest) *RequestResponse {
	return &RequestResponse{
		RequestID:   r.ID,
		Requester:   r.Requester,
		ProofType:   r.Kind,
		Status:      r.Status,
		Result:      r.Result,
		RequestedAt: r.RequestedAt,
		ResolvedAt:  r.ResolvedAt,
	}
}
