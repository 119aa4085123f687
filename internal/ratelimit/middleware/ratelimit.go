// Package middleware enforces per-client request limits on the HTTP API.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"tailscan/internal/ratelimit/metrics"
	"tailscan/internal/ratelimit/models"
	"tailscan/pkg/platform/httputil"
	"tailscan/pkg/requestcontext"
)

// Store admits or rejects one request against a sliding window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
}

type Middleware struct {
	store    Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
	limits   map[models.EndpointClass]int
	window   time.Duration
	disabled bool
}

type Option func(*Middleware)

// WithLimit sets the number of requests a client may make per window for
// class.
func WithLimit(class models.EndpointClass, n int) Option {
	return func(m *Middleware) {
		if n > 0 {
			m.limits[class] = n
		}
	}
}

func WithWindow(d time.Duration) Option {
	return func(m *Middleware) {
		if d > 0 {
			m.window = d
		}
	}
}

func WithMetrics(mm *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = mm
	}
}

// WithDisabled turns every check into a pass-through.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(store Store, logger *slog.Logger, opts ...Option) *Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Middleware{
		store:  store,
		logger: logger,
		limits: map[models.EndpointClass]int{
			models.ClassScan: 30,
			models.ClassRead: 300,
		},
		window: time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// Limit classifies each request and checks the client's window for that
// class. A failing store lets the request through.
func (m *Middleware) Limit(classify func(*http.Request) models.EndpointClass) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			class := classify(r)
			limit, ok := m.limits[class]
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			result, err := m.store.Allow(ctx, models.Key(class, requestcontext.ClientIP(ctx)), limit, m.window)
			if err != nil {
				m.metrics.IncCheckError()
				m.logger.ErrorContext(ctx, "failed to check rate limit",
					"request_id", requestcontext.RequestID(ctx),
					"class", class,
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			addRateLimitHeaders(w, result)
			if !result.Allowed {
				m.metrics.IncRejection(string(class))
				writeRateLimitExceeded(w, result, requestcontext.Now(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.Result, now time.Time) {
	retryAfter := result.RetryAfter(now)
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.ExceededResponse{
		Error:      "rate_limit_exceeded",
		Message:    "Too many requests from this client. Please try again later.",
		RetryAfter: retryAfter,
	})
}
