// Package models holds the rate limit value types shared by the bucket
// stores and the HTTP middleware.
package models

import (
	"strings"
	"time"
)

// EndpointClass groups routes that share a request budget.
type EndpointClass string

const (
	// ClassAuth covers login. Signature recovery is the most expensive
	// unauthenticated work the service does.
	ClassAuth EndpointClass = "auth"
	// ClassWrite covers every other state-changing request.
	ClassWrite EndpointClass = "write"
	// ClassRead covers lookups and the event feed.
	ClassRead EndpointClass = "read"
)

// Limit is a request budget over a sliding window. A zero Requests value
// disables limiting for the class.
type Limit struct {
	Requests int
	Window   time.Duration
}

func (l Limit) Enabled() bool { return l.Requests > 0 && l.Window > 0 }

// Result is the outcome of a single bucket check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds
}

// IPKey builds the bucket key for a client IP within a class. Delimiters in
// the IP are escaped so a crafted header cannot address another bucket.
func IPKey(class EndpointClass, ip string) string {
	return "rl:ip:" + string(class) + ":" + strings.ReplaceAll(ip, ":", "_")
}
