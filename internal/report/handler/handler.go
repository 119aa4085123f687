package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"tailscan/internal/entitlement"
	regmodels "tailscan/internal/registry/models"
	regservice "tailscan/internal/registry/service"
	"tailscan/internal/report/models"
	"tailscan/internal/tailnumber"
	dErrors "tailscan/pkg/domain-errors"
	"tailscan/pkg/platform/httputil"
	"tailscan/pkg/requestcontext"
)

// Service defines the report operations the handler needs.
type Service interface {
	Scan(ctx context.Context, raw string, ent entitlement.Entitlement) (*models.Report, error)
	Suggest(ctx context.Context, partial string) []regmodels.Suggestion
}

// Handler serves scans, suggestions and free-text search.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the report routes. Entitlement middleware must run first.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/scans", h.handleScan)
	r.Get("/v1/aircraft/suggest", h.handleSuggest)
	r.Post("/v1/search", h.handleSearch)
}

type scanRequest struct {
	TailNumber string `json:"tail_number"`
}

type notFoundResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	TailNumber       string `json:"tail_number"`
}

func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, err := httputil.DecodeJSON[scanRequest](r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid scan request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if strings.TrimSpace(req.TailNumber) == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "tail_number is required"))
		return
	}

	report, err := h.service.Scan(ctx, req.TailNumber, entitlement.FromContext(ctx))
	if err != nil {
		var nf *regservice.NotFoundError
		if errors.As(err, &nf) {
			httputil.WriteJSON(w, http.StatusNotFound, notFoundResponse{
				Error:            string(dErrors.CodeNotFound),
				ErrorDescription: "aircraft not found in any registry",
				TailNumber:       nf.TailNumber,
			})
			return
		}
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "scan failed",
				"request_id", requestID,
				"tail_number", req.TailNumber,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

type suggestResponse struct {
	Suggestions []regmodels.Suggestion `json:"suggestions"`
}

func (h *Handler) handleSuggest(w http.ResponseWriter, r *http.Request) {
	out := h.service.Suggest(r.Context(), r.URL.Query().Get("q"))
	httputil.WriteJSON(w, http.StatusOK, suggestResponse{Suggestions: out})
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Intent  tailnumber.Intent `json:"intent"`
	Target  string            `json:"target,omitempty"`
	Message string            `json:"message"`
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.DecodeJSON[searchRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	res := tailnumber.ParseQuery(req.Query)
	httputil.WriteJSON(w, http.StatusOK, searchResponse{
		Intent:  res.Intent,
		Target:  res.Target,
		Message: res.Message,
	})
}
