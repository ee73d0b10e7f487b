// Package handler serves the committed event log over HTTP for UIs and
// external oracles that poll instead of consuming Kafka.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/thientu9562/identity-management/internal/events"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
	"github.com/thientu9562/identity-management/pkg/platform/httputil"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

type Feed interface {
	Since(ctx context.Context, afterSeq uint64, limit int) ([]events.Event, error)
}

type Handler struct {
	feed Feed
}

func New(feed Feed) *Handler {
	return &Handler{feed: feed}
}

func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/events", h.HandleSince)
}

// FeedResponse carries a page of events. Next is the cursor for the
// following call and equals since when the page is empty.
type FeedResponse struct {
	Events []events.Event `json:"events"`
	Next   uint64         `json:"next"`
}

// HandleSince handles GET /events?since=N&limit=M.
func (h *Handler) HandleSince(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var since uint64
	if raw := q.Get("since"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "since must be a non-negative integer"))
			return
		}
		since = v
	}
	limit := defaultLimit
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxLimit {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be between 1 and 1000"))
			return
		}
		limit = v
	}

	evs, err := h.feed.Since(r.Context(), since, limit)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read events"))
		return
	}
	resp := FeedResponse{Events: evs, Next: since}
	if evs == nil {
		resp.Events = []events.Event{}
	}
	if n := len(evs); n > 0 {
		resp.Next = evs[n-1].Seq
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
