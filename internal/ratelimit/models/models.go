// Package models holds rate limiting types.
package models

import "time"

// EndpointClass groups routes that share a limit.
type EndpointClass string

const (
	// ClassScan covers report generation, which fans out to every source.
	ClassScan EndpointClass = "scan"
	// ClassRead covers suggestions, search and utilization lookups.
	ClassRead EndpointClass = "read"
)

// Result is the outcome of one admission check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the whole number of seconds until ResetAt, at least one.
func (r Result) RetryAfter(now time.Time) int {
	secs := int(r.ResetAt.Sub(now).Seconds() + 0.999)
	if secs < 1 {
		return 1
	}
	return secs
}

// Key builds the bucket key for one client and class.
func Key(class EndpointClass, clientIP string) string {
	return "ratelimit:" + string(class) + ":" + clientIP
}

// ExceededResponse is the 429 body.
type ExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}
