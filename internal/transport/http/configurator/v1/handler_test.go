package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/pcbuilder/internal/converter"
	"github.com/you-humble/pcbuilder/internal/model"
	"github.com/you-humble/pcbuilder/internal/repository/facet"
	"github.com/you-humble/pcbuilder/internal/repository/memory"
	"github.com/you-humble/pcbuilder/internal/repository/seed"
	"github.com/you-humble/pcbuilder/internal/service/build"
	"github.com/you-humble/pcbuilder/internal/service/candidate"
	"github.com/you-humble/pcbuilder/internal/service/validation"
	"github.com/you-humble/pcbuilder/platform/logger"
)

func newRouter(t *testing.T) *chi.Mux {
	t.Helper()

	parts, err := seed.Parts()
	require.NoError(t, err)
	catalog, err := memory.NewPartRepository(parts)
	require.NoError(t, err)
	facets, err := facet.NewFacetRepository()
	require.NoError(t, err)

	h := NewConfiguratorHandler(
		build.NewBuildService(catalog, time.Second),
		validation.NewValidationService(nil),
		candidate.NewCandidateService(catalog, facets, nil, time.Second),
	)

	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func serve(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestListCategories(t *testing.T) {
	t.Parallel()

	rec := serve(t, newRouter(t), http.MethodGet, "/v1/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	got := decodeBody[[]converter.CategoryResponse](t, rec)
	require.Len(t, got, len(model.Categories()))
	assert.Equal(t, converter.CategoryResponse{Name: "Case", Slug: "case"}, got[0])
	assert.Contains(t, got, converter.CategoryResponse{Name: "Power Supply", Slug: "psu"})
}

func TestListFacets(t *testing.T) {
	t.Parallel()

	r := newRouter(t)

	tests := []struct {
		name    string
		target  string
		wantIDs []string
	}{
		{
			name:    "by slug",
			target:  "/v1/categories/cpu/facets",
			wantIDs: []string{"price", "manufacturer", "Socket", "Cores", "TDP", "Integrated Graphics"},
		},
		{
			name:    "by escaped name",
			target:  "/v1/categories/CPU%20Cooler/facets",
			wantIDs: []string{"price", "Type", "Radiator Size"},
		},
		{
			name:    "unknown category",
			target:  "/v1/categories/toaster/facets",
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(t, r, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code)

			got := decodeBody[[]converter.FacetResponse](t, rec)
			ids := lo.Map(got, func(f converter.FacetResponse, _ int) string { return f.ID })
			assert.Equal(t, tt.wantIDs, ids[:min(len(ids), len(tt.wantIDs))])
			if len(tt.wantIDs) == 0 {
				assert.Empty(t, got)
			}
		})
	}
}

func TestValidateBuild(t *testing.T) {
	t.Parallel()

	r := newRouter(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
		assert   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:     "empty build",
			body:     `{"parts": {}}`,
			wantCode: http.StatusOK,
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				got := decodeBody[converter.ReportResponse](t, rec)
				assert.True(t, got.Compatible)
				assert.Zero(t, got.TotalWattage)
				assert.Empty(t, got.Warnings)
				assert.NotNil(t, got.Warnings)
			},
		},
		{
			name:     "powered build without a PSU",
			body:     `{"parts": {"GPU": "gpu2"}}`,
			wantCode: http.StatusOK,
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				got := decodeBody[converter.ReportResponse](t, rec)
				assert.True(t, got.Compatible)
				assert.Equal(t, []string{"No Power Supply Unit (PSU) selected."}, got.Warnings)
			},
		},
		{
			name:     "socket mismatch",
			body:     `{"parts": {"CPU": "cpu1", "motherboard": "mb2", "psu": "psu1"}}`,
			wantCode: http.StatusOK,
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				got := decodeBody[converter.ReportResponse](t, rec)
				assert.False(t, got.Compatible)
				assert.Equal(t, 303.0, got.TotalWattage)
				require.Len(t, got.Violations, 1)
				assert.Equal(t, "socket-match", got.Violations[0].RuleID)
				assert.Equal(t, "hard", got.Violations[0].Severity)
			},
		},
		{
			name:     "compatible build",
			body:     `{"parts": {"CPU": "cpu2", "Motherboard": "mb2", "RAM": "ram1", "Power Supply": "psu1"}}`,
			wantCode: http.StatusOK,
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				got := decodeBody[converter.ReportResponse](t, rec)
				assert.True(t, got.Compatible)
				assert.Empty(t, got.Warnings)
				assert.Empty(t, got.Violations)
			},
		},
		{
			name:     "unknown part",
			body:     `{"parts": {"GPU": "gpu-404"}}`,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "part in the wrong slot",
			body:     `{"parts": {"GPU": "cpu1"}}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown slot",
			body:     `{"parts": {"Toaster": "cpu1"}}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "blank part id",
			body:     `{"parts": {"CPU": ""}}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "whitespace part id",
			body:     `{"parts": {"CPU": "   "}}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed body",
			body:     `{"parts": [`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown field",
			body:     `{"slots": {}}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(t, r, http.MethodPost, "/v1/builds/validate", tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			if tt.wantCode != http.StatusOK {
				got := decodeBody[converter.ErrorResponse](t, rec)
				assert.Equal(t, tt.wantCode, got.Code)
				assert.NotEmpty(t, got.Message)
			}
			if tt.assert != nil {
				tt.assert(t, rec)
			}
		})
	}
}

func TestFilterCandidates(t *testing.T) {
	t.Parallel()

	r := newRouter(t)

	tests := []struct {
		name     string
		target   string
		body     string
		wantCode int
		wantIDs  []string
	}{
		{
			name:     "whole category",
			target:   "/v1/categories/cpu/candidates",
			body:     `{}`,
			wantCode: http.StatusOK,
			wantIDs:  []string{"cpu1", "cpu2", "cpu3", "cpu4"},
		},
		{
			name:     "compatible with the chosen motherboard",
			target:   "/v1/categories/cpu/candidates",
			body:     `{"parts": {"Motherboard": "mb2"}, "compatible_only": true}`,
			wantCode: http.StatusOK,
			wantIDs:  []string{"cpu2"},
		},
		{
			name:     "compatibility off keeps everything",
			target:   "/v1/categories/cpu/candidates",
			body:     `{"parts": {"Motherboard": "mb2"}, "compatible_only": false}`,
			wantCode: http.StatusOK,
			wantIDs:  []string{"cpu1", "cpu2", "cpu3", "cpu4"},
		},
		{
			name:     "price threshold",
			target:   "/v1/categories/cpu/candidates",
			body:     `{"active_facets": {"price": 200}}`,
			wantCode: http.StatusOK,
			wantIDs:  []string{"cpu4"},
		},
		{
			name:     "checkbox selection",
			target:   "/v1/categories/cpu/candidates",
			body:     `{"active_facets": {"Socket": ["AM5", "AM4"], "manufacturer": null}}`,
			wantCode: http.StatusOK,
			wantIDs:  []string{"cpu2", "cpu4"},
		},
		{
			name:     "search text",
			target:   "/v1/categories/cpu/candidates",
			body:     `{"search_text": "  ryzen "}`,
			wantCode: http.StatusOK,
			wantIDs:  []string{"cpu2", "cpu4"},
		},
		{
			name:     "unknown category",
			target:   "/v1/categories/toaster/candidates",
			body:     `{}`,
			wantCode: http.StatusOK,
			wantIDs:  []string{},
		},
		{
			name:     "bad facet value",
			target:   "/v1/categories/cpu/candidates",
			body:     `{"active_facets": {"price": "cheap"}}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown chosen part",
			target:   "/v1/categories/cpu/candidates",
			body:     `{"parts": {"Motherboard": "mb-404"}, "compatible_only": true}`,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(t, r, http.MethodPost, tt.target, tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantCode != http.StatusOK {
				return
			}

			got := decodeBody[[]converter.PartResponse](t, rec)
			ids := lo.Map(got, func(p converter.PartResponse, _ int) string { return p.ID })
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestPartResponseSpecs(t *testing.T) {
	t.Parallel()

	rec := serve(t, newRouter(t), http.MethodPost, "/v1/categories/gpu/candidates", `{"search_text": "4090"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[[]converter.PartResponse](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "gpu1", got[0].ID)
	assert.Equal(t, "GPU", got[0].Category)
	assert.IsType(t, float64(0), got[0].Specs["Length"])
}

type failingCandidates struct{}

func (failingCandidates) Facets(model.Category) []model.FacetDefinition { return nil }

func (failingCandidates) FilterCandidates(
	context.Context, model.Category, model.Configuration, model.FilterCriteria,
) ([]*model.Part, error) {
	return nil, errors.New("catalog unavailable")
}

type emptyResolver struct{}

func (emptyResolver) Resolve(context.Context, map[model.Category]string) (model.Configuration, error) {
	return model.NewConfiguration()
}

func TestFilterCandidatesInternalError(t *testing.T) {
	t.Parallel()

	logger.SetNopLogger()

	h := NewConfiguratorHandler(emptyResolver{}, validation.NewValidationService(nil), failingCandidates{})
	r := chi.NewRouter()
	h.Routes(r)

	rec := serve(t, r, http.MethodPost, "/v1/categories/cpu/candidates", `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	got := decodeBody[converter.ErrorResponse](t, rec)
	assert.Equal(t, "catalog unavailable", got.Message)
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: model.ErrPartNotFound, want: http.StatusNotFound},
		{name: "invalid argument", err: errors.Join(model.ErrInvalidArgument, errors.New("x")), want: http.StatusBadRequest},
		{name: "category mismatch", err: model.ErrCategoryMismatch, want: http.StatusBadRequest},
		{name: "timeout", err: context.DeadlineExceeded, want: http.StatusGatewayTimeout},
		{name: "other", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mapError(tt.err))
		})
	}
}
