package probe

import (
	"context"
	"time"
)

// Check describes one page load and the markers that prove it is live.
type Check struct {
	Name    string // human label, e.g. "Railway deployment"
	Section string // console heading the check is printed under
	URL     string
	Markers []string // any one of these, matched case-sensitively
	Timeout time.Duration
}

// Page is what a driver hands back after a successful load.
type Page struct {
	URL        string
	Title      string
	HTML       string
	StatusCode int // 0 when the driver cannot tell
}

// Session is a single browser (or HTTP client) reused serially across checks.
type Session interface {
	Load(ctx context.Context, url string, timeout time.Duration) (Page, error)
	Close() error
}

// Driver opens sessions. The prober opens exactly one per run.
type Driver interface {
	Open(ctx context.Context) (Session, error)
}

type Kind string

const (
	KindLive            Kind = "live"
	KindContentMissing  Kind = "content_missing"
	KindNameNotResolved Kind = "name_not_resolved"
	KindFailed          Kind = "failed"
)

// CheckResult holds the outcome of a single check. It is printed, logged and dropped.
type CheckResult struct {
	Name      string  `json:"name"`
	URL       string  `json:"url"`
	Success   bool    `json:"success"`
	Kind      Kind    `json:"kind"`
	Message   string  `json:"message"`
	Title     string  `json:"title,omitempty"`
	Marker    string  `json:"marker,omitempty"`
	LatencyMS float64 `json:"latency_ms,omitempty"`
	Err       error   `json:"-"`
}
