package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
	"github.com/thientu9562/identity-management/pkg/platform/httputil"
	"github.com/thientu9562/identity-management/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the interface for access control operations.
type Service interface {
	Admin(ctx context.Context) (domain.Address, error)
	TransferAdmin(ctx context.Context, caller, newAdmin domain.Address) error
	AddValidCountryCode(ctx context.Context, caller domain.Address, code domain.CountryCode) error
	ValidCountryCodes(ctx context.Context) ([]domain.CountryCode, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/admin", h.HandleAdmin)
	r.Get("/admin/country-codes", h.HandleListCountryCodes)
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/transfer", h.HandleTransfer)
	r.Post("/admin/country-codes", h.HandleAddCountryCode)
}

// HandleAdmin handles GET /admin.
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	admin, err := h.service.Admin(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AdminResponse{Admin: admin})
}

// HandleTransfer handles POST /admin/transfer.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferAdminRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.TransferAdmin(ctx, caller, *req.NewAdmin); err != nil {
		h.logger.WarnContext(ctx, "admin transfer rejected",
			"request_id", requestID,
			"user", caller,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AdminResponse{Admin: *req.NewAdmin})
}

// HandleAddCountryCode handles POST /admin/country-codes.
func (h *Handler) HandleAddCountryCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddCountryCodeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.AddValidCountryCode(ctx, caller, *req.CountryCode); err != nil {
		h.logger.WarnContext(ctx, "country code rejected",
			"request_id", requestID,
			"user", caller,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListCountryCodes handles GET /admin/country-codes.
func (h *Handler) HandleListCountryCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.service.ValidCountryCodes(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCountryCodes(codes))
}
