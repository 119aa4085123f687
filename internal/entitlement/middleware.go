package entitlement

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "tailscan/pkg/domain-errors"
	"tailscan/pkg/platform/httputil"
	"tailscan/pkg/requestcontext"
)

// Validator verifies entitlement tokens.
type Validator interface {
	Validate(tokenString string) (*Claims, error)
}

// Middleware attaches the caller's entitlement to the request context. A
// request without a bearer token proceeds as Anonymous; a bad token is
// rejected with 401.
func Middleware(validator Validator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				next.ServeHTTP(w, r.WithContext(WithEntitlement(ctx, Anonymous)))
				return
			}

			claims, err := validator.Validate(strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(ctx, "rejected entitlement token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				if !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
					err = dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid entitlement token")
				}
				httputil.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithEntitlement(ctx, claims.Entitlement())))
		})
	}
}
