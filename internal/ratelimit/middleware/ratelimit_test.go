package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thientu9562/identity-management/internal/platform/logger"
	"github.com/thientu9562/identity-management/internal/ratelimit/models"
	"github.com/thientu9562/identity-management/internal/ratelimit/store/bucket"
	"github.com/thientu9562/identity-management/pkg/requestcontext"
)

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (*models.Result, error) {
	return nil, errors.New("redis down")
}

func serve(h http.Handler, method, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req = req.WithContext(requestcontext.WithClientMetadata(req.Context(), ip, "test"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestClassify(t *testing.T) {
	tests := []struct {
		method, path string
		want         models.EndpointClass
	}{
		{http.MethodPost, "/auth/token", models.ClassAuth},
		{http.MethodPost, "/proofs/age-over-18", models.ClassWrite},
		{http.MethodGet, "/proofs/pending", models.ClassRead},
		{http.MethodGet, "/auth/whatever", models.ClassRead},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		assert.Equal(t, tt.want, Classify(req), "%s %s", tt.method, tt.path)
	}
}

func TestHandler(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	t.Run("rejects once the class budget is spent", func(t *testing.T) {
		mw := New(bucket.NewInMemoryBucketStore(), map[models.EndpointClass]models.Limit{
			models.ClassAuth: {Requests: 2, Window: time.Minute},
		}, WithLogger(logger.Discard()))
		h := mw.Handler(ok)

		for range 2 {
			rec := serve(h, http.MethodPost, "/auth/token", "10.0.0.1")
			require.Equal(t, http.StatusNoContent, rec.Code)
		}
		rec := serve(h, http.MethodPost, "/auth/token", "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.JSONEq(t, `{"error":"rate_limited","error_description":"too many requests; retry later"}`, rec.Body.String())

		rec = serve(h, http.MethodPost, "/auth/token", "10.0.0.2")
		assert.Equal(t, http.StatusNoContent, rec.Code, "other clients keep their budget")
	})

	t.Run("unconfigured classes pass", func(t *testing.T) {
		mw := New(bucket.NewInMemoryBucketStore(), map[models.EndpointClass]models.Limit{
			models.ClassAuth:  {Requests: 1, Window: time.Minute},
			models.ClassWrite: {},
		}, WithLogger(logger.Discard()))
		h := mw.Handler(ok)

		for range 3 {
			assert.Equal(t, http.StatusNoContent, serve(h, http.MethodPost, "/proofs/age-over-18", "10.0.0.1").Code)
			assert.Equal(t, http.StatusNoContent, serve(h, http.MethodGet, "/proofs/pending", "10.0.0.1").Code)
		}
	})

	t.Run("store failures fail open", func(t *testing.T) {
		mw := New(failingStore{}, map[models.EndpointClass]models.Limit{
			models.ClassWrite: {Requests: 1, Window: time.Minute},
		}, WithLogger(logger.Discard()))
		rec := serve(mw.Handler(ok), http.MethodPost, "/identity", "10.0.0.1")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
