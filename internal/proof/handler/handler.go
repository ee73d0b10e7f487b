package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thientu9562/identity-management/internal/proof/models"
	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
	"github.com/thientu9562/identity-management/pkg/platform/httputil"
	"github.com/thientu9562/identity-management/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the interface for proof operations.
type Service interface {
	ProveAgeOver18(ctx context.Context, caller domain.Address) (domain.RequestID, error)
	ProveAgeOver21AndValidCountry(ctx context.Context, caller domain.Address) (domain.RequestID, error)
	HandleProofResult(ctx context.Context, id domain.RequestID, result bool, signatures [][]byte) error
	CancelPendingRequest(ctx context.Context, caller domain.Address, id domain.RequestID) error
	IsDecryptionPending(ctx context.Context) (bool, error)
	PendingRequest(ctx context.Context) (*models.ProofRequest, error)
	LatestRequestID(ctx context.Context) (domain.RequestID, error)
	GetRequest(ctx context.Context, id domain.RequestID) (*models.ProofRequest, error)
}

// Handler wires proof endpoints to the proof state machine.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the read side and the oracle callback. Results are
// trusted by their KMS signatures, not by the caller.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/proofs/pending", h.HandlePending)
	r.Get("/proofs/latest", h.HandleLatest)
	r.Get("/proofs/{requestId}", h.HandleGet)
	r.Post("/proofs/{requestId}/result", h.HandleResult)
}

// Register mounts endpoints that need an authenticated caller.
func (h *Handler) Register(r chi.Router) {
	r.Post("/proofs/age-over-18", h.prove(models.KindAgeOver18, h.service.ProveAgeOver18))
	r.Post("/proofs/age-over-21-valid-country", h.prove(models.KindAgeOver21AndValidCountry, h.service.ProveAgeOver21AndValidCountry))
	r.Post("/admin/proofs/{requestId}/cancel", h.HandleCancel)
}

func (h *Handler) prove(kind models.Kind, fn func(context.Context, domain.Address) (domain.RequestID, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller := requestcontext.Caller(ctx)
		if caller.IsZero() {
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
			return
		}
		id, err := fn(ctx, caller)
		if err != nil {
			h.logger.WarnContext(ctx, "proof request rejected",
				"request_id", requestcontext.RequestID(ctx),
				"user", caller,
				"kind", kind,
				"error", err,
			)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusAccepted, RequestIDResponse{RequestID: id})
	}
}

func requestIDParam(r *http.Request) (domain.RequestID, error) {
	return domain.ParseRequestID(chi.URLParam(r, "requestId"))
}

// HandleResult handles POST /proofs/{requestId}/result.
func (h *Handler) HandleResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := requestIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ProofResultRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.HandleProofResult(ctx, id, *req.Result, req.RawSignatures()); err != nil {
		h.logger.WarnContext(ctx, "proof result rejected",
			"request_id", requestID,
			"proof_request_id", id.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCancel handles POST /admin/proofs/{requestId}/cancel.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	id, err := requestIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.CancelPendingRequest(ctx, caller, id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGet handles GET /proofs/{requestId}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := requestIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := h.service.GetRequest(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRequest(req))
}

// HandlePending handles GET /proofs/pending.
func (h *Handler) HandlePending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pending, err := h.service.IsDecryptionPending(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !pending {
		httputil.WriteJSON(w, http.StatusOK, PendingResponse{Pending: false})
		return
	}
	req, err := h.service.PendingRequest(ctx)
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		// Fulfilled between the two reads.
		httputil.WriteJSON(w, http.StatusOK, PendingResponse{Pending: false})
		return
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PendingResponse{Pending: true, Request: FromRequest(req)})
}

// HandleLatest handles GET /proofs/latest.
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.LatestRequestID(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RequestIDResponse{RequestID: id})
}
