package request

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thientu9562/identity-management/pkg/platform/middleware/metadata"
)

func TestLogger_RecordsClientMetadata(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	teapot := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := RequestID(metadata.ClientMetadata(Logger(log)(teapot)))

	req := httptest.NewRequest(http.MethodGet, "/proofs/latest", nil)
	req.Header.Set("User-Agent", "oracle-relayer/1.0")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, "oracle-relayer/1.0", line["user_agent"])
	assert.Equal(t, "203.0.113.7", line["client_ip"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
	assert.Equal(t, rr.Header().Get(HeaderRequestID), line["request_id"])
}
