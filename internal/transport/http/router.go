// Package httptransport assembles the chi router from the domain handlers.
// Handlers own their routes; this package only decides which of them sit
// behind authentication and which middleware wraps them.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/thientu9562/identity-management/internal/platform/metrics"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
	"github.com/thientu9562/identity-management/pkg/platform/httputil"
	authmw "github.com/thientu9562/identity-management/pkg/platform/middleware/auth"
	"github.com/thientu9562/identity-management/pkg/platform/middleware/metadata"
	"github.com/thientu9562/identity-management/pkg/platform/middleware/request"
	"github.com/thientu9562/identity-management/pkg/platform/middleware/requesttime"
)

const requestTimeout = 30 * time.Second

// PublicRoutes is implemented by handlers with unauthenticated endpoints.
type PublicRoutes interface {
	RegisterPublic(r chi.Router)
}

// ProtectedRoutes is implemented by handlers whose endpoints need a caller.
type ProtectedRoutes interface {
	Register(r chi.Router)
}

// HealthCheck reports a dependency failure; nil means healthy.
type HealthCheck func(ctx context.Context) error

type Config struct {
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	Validator   authmw.JWTValidator
	Revocations authmw.TokenRevocationChecker
	Public      []PublicRoutes
	Protected   []ProtectedRoutes
	Health      map[string]HealthCheck
	// RateLimit wraps the API routes when set.
	RateLimit func(http.Handler) http.Handler
}

func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(request.Logger(cfg.Logger))
	r.Use(cfg.Metrics.Middleware)

	r.Get("/healthz", healthz(cfg.Health))
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(api chi.Router) {
		api.Use(chimw.Timeout(requestTimeout))
		if cfg.RateLimit != nil {
			api.Use(cfg.RateLimit)
		}
		for _, h := range cfg.Public {
			h.RegisterPublic(api)
		}
		api.Group(func(protected chi.Router) {
			protected.Use(authmw.RequireAuth(cfg.Validator, cfg.Revocations, cfg.Logger))
			for _, h := range cfg.Protected {
				h.Register(protected)
			}
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthz(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
