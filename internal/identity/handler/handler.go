package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thientu9562/identity-management/internal/identity/models"
	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
	"github.com/thientu9562/identity-management/pkg/platform/httputil"
	"github.com/thientu9562/identity-management/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the interface for identity operations.
type Service interface {
	RegisterIdentity(ctx context.Context, user domain.Address, inputs models.Inputs) error
	IsIdentityRegistered(ctx context.Context, user domain.Address) (bool, error)
}

// Handler wires identity endpoints to the identity service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the unauthenticated lookup.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/identity/{address}", h.HandleIsRegistered)
}

// Register mounts endpoints that need an authenticated caller.
func (h *Handler) Register(r chi.Router) {
	r.Post("/identity", h.HandleRegister)
}

// HandleRegister handles POST /identity. The caller registers themself.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[RegisterIdentityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.RegisterIdentity(ctx, caller, req.Inputs()); err != nil {
		h.logger.WarnContext(ctx, "identity registration rejected",
			"request_id", requestID,
			"user", caller,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "identity registration accepted",
		"request_id", requestID,
		"user", caller,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, RegistrationResponse{User: caller, Registered: true})
}

// HandleIsRegistered handles GET /identity/{address}.
func (h *Handler) HandleIsRegistered(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	registered, err := h.service.IsIdentityRegistered(ctx, user)
	if err != nil {
		h.logger.ErrorContext(ctx, "identity lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"user", user,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RegistrationResponse{User: user, Registered: registered})
}
