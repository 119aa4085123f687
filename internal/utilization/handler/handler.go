package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tailscan/internal/entitlement"
	"tailscan/internal/utilization/models"
	dErrors "tailscan/pkg/domain-errors"
	"tailscan/pkg/platform/httputil"
	"tailscan/pkg/requestcontext"
)

// Service defines the utilization operation the handler needs.
type Service interface {
	Get(ctx context.Context, tail string, ent entitlement.Entitlement) (*models.Result, error)
}

// Handler serves flight utilization for one aircraft.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the utilization route. Entitlement middleware must run first.
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/aircraft/{tail}/utilization", h.handleGetUtilization)
}

func (h *Handler) handleGetUtilization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tail := chi.URLParam(r, "tail")

	res, err := h.service.Get(ctx, tail, entitlement.FromContext(ctx))
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "utilization lookup failed",
				"request_id", requestcontext.RequestID(ctx),
				"tail_number", tail,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}
