// Package middleware limits requests per client IP with a sliding window.
// Store failures fail open: availability of the proof flow matters more than
// the budget.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/thientu9562/identity-management/internal/ratelimit/metrics"
	"github.com/thientu9562/identity-management/internal/ratelimit/models"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
	"github.com/thientu9562/identity-management/pkg/platform/httputil"
	"github.com/thientu9562/identity-management/pkg/requestcontext"
)

type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
}

type Middleware struct {
	store   BucketStore
	limits  map[models.EndpointClass]models.Limit
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Middleware)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Middleware) {
		m.logger = logger
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = mt
	}
}

// New builds the middleware. Classes missing from limits are not limited.
func New(store BucketStore, limits map[models.EndpointClass]models.Limit, opts ...Option) *Middleware {
	m := &Middleware{
		store:  store,
		limits: limits,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Classify maps a request to its endpoint class.
func Classify(r *http.Request) models.EndpointClass {
	switch {
	case r.Method == http.MethodGet || r.Method == http.MethodHead:
		return models.ClassRead
	case strings.HasPrefix(r.URL.Path, "/auth/"):
		return models.ClassAuth
	default:
		return models.ClassWrite
	}
}

func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		class := Classify(r)
		limit, ok := m.limits[class]
		if !ok || !limit.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		result, err := m.store.Allow(ctx, models.IPKey(class, ip), limit.Requests, limit.Window)
		if err != nil {
			m.metrics.IncStoreErrors()
			m.logger.ErrorContext(ctx, "failed to check rate limit",
				"class", class,
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)
		if !result.Allowed {
			m.metrics.IncRejected(string(class))
			m.logger.WarnContext(ctx, "rate limit exceeded",
				"request_id", requestcontext.RequestID(ctx),
				"class", class,
				"client_ip", ip,
			)
			w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
			httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "too many requests; retry later"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
