package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tailscan/internal/app"
	"tailscan/internal/entitlement"
	"tailscan/internal/platform/config"
	"tailscan/internal/platform/httpserver"
	"tailscan/internal/platform/logger"
	platformmetrics "tailscan/internal/platform/metrics"
	"tailscan/internal/platform/middleware"
	rlmodels "tailscan/internal/ratelimit/models"
	reporthandler "tailscan/internal/report/handler"
	utilhandler "tailscan/internal/utilization/handler"
	"tailscan/pkg/platform/middleware/device"
	"tailscan/pkg/platform/middleware/metadata"
	"tailscan/pkg/platform/middleware/requesttime"
)

// main loads configuration, builds the application and serves it until
// SIGINT or SIGTERM.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Development())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Error("failed to build application", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	log.Info("starting tailscan", "environment", cfg.Environment)
	srv := httpserver.New(cfg.Addr, newRouter(a, log))
	if err := httpserver.Run(ctx, srv, log); err != nil {
		log.Error("server error", "error", err)
		a.Close()
		os.Exit(1)
	}
}

func newRouter(a *app.App, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(metadata.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(device.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.Latency(platformmetrics.New()))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.Health(ctx); err != nil {
			log.WarnContext(ctx, "health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(a.RateLimiter.Limit(endpointClass))
		r.Use(entitlement.Middleware(a.Tokens, log))
		reporthandler.New(a.Reports, log).Register(r)
		utilhandler.New(a.Utilization, log).Register(r)
	})
	return r
}

// endpointClass puts report generation in its own, tighter budget.
func endpointClass(r *http.Request) rlmodels.EndpointClass {
	if r.Method == http.MethodPost && r.URL.Path == "/v1/scans" {
		return rlmodels.ClassScan
	}
	return rlmodels.ClassRead
}
