package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/you-humble/pcbuilder/internal/converter"
	"github.com/you-humble/pcbuilder/internal/model"
	"github.com/you-humble/pcbuilder/platform/logger"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

type BuildResolver interface {
	Resolve(ctx context.Context, slots map[model.Category]string) (model.Configuration, error)
}

type Validator interface {
	Validate(cfg model.Configuration) model.ValidationReport
}

type CandidateService interface {
	Facets(category model.Category) []model.FacetDefinition
	FilterCandidates(
		ctx context.Context,
		category model.Category,
		cfg model.Configuration,
		criteria model.FilterCriteria,
	) ([]*model.Part, error)
}

type handler struct {
	builds     BuildResolver
	validator  Validator
	candidates CandidateService
}

func NewConfiguratorHandler(builds BuildResolver, validation Validator, candidates CandidateService) *handler {
	return &handler{
		builds:     builds,
		validator:  validation,
		candidates: candidates,
	}
}

// Routes mounts the v1 API on r.
func (h *handler) Routes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/categories", h.ListCategories)
		r.Get("/categories/{category}/facets", h.ListFacets)
		r.Post("/categories/{category}/candidates", h.FilterCandidates)
		r.Post("/builds/validate", h.ValidateBuild)
	})
}

func (h *handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, converter.CategoriesToResponse(model.Categories()))
}

func (h *handler) ListFacets(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryParam(r)
	if !ok {
		writeJSON(w, r, http.StatusOK, []converter.FacetResponse{})
		return
	}

	writeJSON(w, r, http.StatusOK, converter.FacetsToResponse(h.candidates.Facets(category)))
}

func (h *handler) ValidateBuild(w http.ResponseWriter, r *http.Request) {
	var req converter.ValidateBuildRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	cfg, err := h.resolve(r.Context(), req.Parts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.ReportToResponse(h.validator.Validate(cfg)))
}

func (h *handler) FilterCandidates(w http.ResponseWriter, r *http.Request) {
	var req converter.CandidatesRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	criteria, err := converter.CandidatesRequestToCriteria(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	category, ok := categoryParam(r)
	if !ok {
		writeJSON(w, r, http.StatusOK, []converter.PartResponse{})
		return
	}

	cfg, err := h.resolve(r.Context(), req.Parts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	parts, err := h.candidates.FilterCandidates(r.Context(), category, cfg, criteria)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.PartsToResponse(parts))
}

func (h *handler) resolve(ctx context.Context, parts map[string]string) (model.Configuration, error) {
	slots, err := converter.SlotsFromRequest(parts)
	if err != nil {
		return model.Configuration{}, err
	}
	return h.builds.Resolve(ctx, slots)
}

func categoryParam(r *http.Request) (model.Category, bool) {
	category, err := model.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		return "", false
	}
	return category, true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return errors.Join(model.ErrInvalidArgument, fmt.Errorf("malformed request body: %w", err))
	}
	if err := validate.Struct(dst); err != nil {
		return errors.Join(model.ErrInvalidArgument, err)
	}
	return nil
}

func mapError(err error) int {
	switch {
	case errors.Is(err, model.ErrPartNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidArgument),
		errors.Is(err, model.ErrCategoryMismatch),
		errors.Is(err, model.ErrUnknownCategory):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := mapError(err)
	if code == http.StatusInternalServerError {
		logger.Error(r.Context(), "configurator request failed",
			logger.String("path", r.URL.Path),
			logger.ErrorF(err),
		)
	}

	writeJSON(w, r, code, converter.ErrorResponse{Code: code, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error(r.Context(), "write response", logger.ErrorF(err))
	}
}
