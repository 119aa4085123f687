package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailscan/internal/entitlement"
	regmodels "tailscan/internal/registry/models"
	regservice "tailscan/internal/registry/service"
	"tailscan/internal/report/models"
	"tailscan/internal/tailnumber"
)

type stubService struct {
	report      *models.Report
	err         error
	gotRaw      string
	gotEnt      entitlement.Entitlement
	suggestions []regmodels.Suggestion
}

func (s *stubService) Scan(_ context.Context, raw string, ent entitlement.Entitlement) (*models.Report, error) {
	s.gotRaw = raw
	s.gotEnt = ent
	return s.report, s.err
}

func (s *stubService) Suggest(context.Context, string) []regmodels.Suggestion {
	return s.suggestions
}

func router(svc Service) http.Handler {
	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleScan(t *testing.T) {
	t.Run("returns the report", func(t *testing.T) {
		svc := &stubService{report: &models.Report{TailNumber: "N9305P", ConfidenceScore: 65}}
		rec := do(t, router(svc), http.MethodPost, "/v1/scans", `{"tail_number":"n9305p"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "n9305p", svc.gotRaw)
		assert.Equal(t, entitlement.Anonymous, svc.gotEnt)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "N9305P", body["tail_number"])
		assert.EqualValues(t, 65, body["confidence_score"])
	})

	t.Run("not found carries the attempted tail", func(t *testing.T) {
		svc := &stubService{err: &regservice.NotFoundError{TailNumber: "N12345"}}
		rec := do(t, router(svc), http.MethodPost, "/v1/scans", `{"tail_number":"N12345"}`)

		require.Equal(t, http.StatusNotFound, rec.Code)
		var body notFoundResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not_found", body.Error)
		assert.Equal(t, "N12345", body.TailNumber)
	})

	t.Run("unparseable mark is a 400", func(t *testing.T) {
		svc := &stubService{err: tailnumber.ErrInvalid}
		rec := do(t, router(svc), http.MethodPost, "/v1/scans", `{"tail_number":"???"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing tail number is a 400", func(t *testing.T) {
		rec := do(t, router(&stubService{}), http.MethodPost, "/v1/scans", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		rec := do(t, router(&stubService{}), http.MethodPost, "/v1/scans", `{"tail":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleSuggest(t *testing.T) {
	svc := &stubService{suggestions: []regmodels.Suggestion{{TailNumber: "C-GWKQ"}}}
	rec := do(t, router(svc), http.MethodGet, "/v1/aircraft/suggest?q=cgw", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body suggestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Suggestions, 1)
	assert.Equal(t, "C-GWKQ", body.Suggestions[0].TailNumber)
}

func TestHandleSearch(t *testing.T) {
	rec := do(t, router(&stubService{}), http.MethodPost, "/v1/search", `{"query":"what happened to N904GS last year"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, tailnumber.IntentForensic, body.Intent)
	assert.Equal(t, "N904GS", body.Target)
}
