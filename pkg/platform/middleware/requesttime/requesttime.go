// Package requesttime provides middleware for request-scoped time.
// All operations within a single scan use the same "now": cache expiry
// checks, airframe age and the report timestamp agree with each other.
package requesttime

import (
	"net/http"
	"time"

	"tailscan/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request
// and stores it in the context for consistent time references throughout the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
