package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thientu9562/identity-management/internal/auth/models"
	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
	"github.com/thientu9562/identity-management/pkg/platform/httputil"
	authmw "github.com/thientu9562/identity-management/pkg/platform/middleware/auth"
	"github.com/thientu9562/identity-management/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type Service interface {
	Login(ctx context.Context, addr domain.Address, message string, signature []byte) (*models.Token, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/auth/token", h.HandleToken)
}

// Register mounts logout, which needs the validated claims of the presented token.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/logout", h.HandleLogout)
}

// HandleToken handles POST /auth/token.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[TokenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	token, err := h.service.Login(ctx, req.address, req.Message, req.Signature)
	if err != nil {
		h.logger.WarnContext(ctx, "login rejected",
			"request_id", requestID,
			"user", req.address,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromToken(token, requestcontext.Now(ctx)))
}

// HandleLogout handles POST /auth/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, ok := authmw.Claims(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	if err := h.service.Logout(ctx, claims.JTI, claims.ExpiresAt); err != nil {
		h.logger.ErrorContext(ctx, "logout failed",
			"request_id", requestcontext.RequestID(ctx),
			"user", claims.Caller,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
