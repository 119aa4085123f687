// Package device classifies the calling client from its User-Agent so audit
// trails can tell browsers, scripts and crawlers apart.
package device

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

const unknownClient = "unknown"

// Label condenses a User-Agent header into "browser/os", "bot:name" or
// "unknown". Mobile clients get a ":mobile" suffix.
func Label(userAgent string) string {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return unknownClient
	}
	ua := useragent.New(userAgent)
	name, _ := ua.Browser()
	if ua.Bot() {
		if name == "" {
			name = unknownClient
		}
		return "bot:" + strings.ToLower(name)
	}
	if name == "" {
		return unknownClient
	}
	label := strings.ToLower(name)
	if os := ua.OS(); os != "" {
		label += "/" + strings.ToLower(os)
	}
	if ua.Mobile() {
		label += ":mobile"
	}
	return label
}

// Middleware stores the client label on the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithClient(r.Context(), Label(r.Header.Get("User-Agent")))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
