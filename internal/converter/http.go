package converter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/you-humble/pcbuilder/internal/model"
)

type ValidateBuildRequest struct {
	Parts map[string]string `json:"parts" validate:"dive,keys,required,endkeys,required"`
}

type CandidatesRequest struct {
	Parts          map[string]string          `json:"parts" validate:"dive,keys,required,endkeys,required"`
	SearchText     string                     `json:"search_text" validate:"max=200"`
	CompatibleOnly bool                       `json:"compatible_only"`
	ActiveFacets   map[string]json.RawMessage `json:"active_facets"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type PartResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Category     string         `json:"category"`
	Price        float64        `json:"price"`
	Wattage      float64        `json:"wattage"`
	Manufacturer string         `json:"manufacturer"`
	InStock      bool           `json:"in_stock"`
	Store        string         `json:"store,omitempty"`
	Description  string         `json:"description,omitempty"`
	Specs        map[string]any `json:"specs"`
}

type ViolationResponse struct {
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type ReportResponse struct {
	TotalPrice   float64             `json:"total_price"`
	TotalWattage float64             `json:"total_wattage"`
	Compatible   bool                `json:"compatible"`
	Warnings     []string            `json:"warnings"`
	Violations   []ViolationResponse `json:"violations"`
}

type FacetResponse struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Kind    string   `json:"kind"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Step    *float64 `json:"step,omitempty"`
	Unit    string   `json:"unit,omitempty"`
	Options []string `json:"options,omitempty"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SlotsFromRequest maps request slot keys, category names or slugs, to
// categories. Part ids must not be blank.
func SlotsFromRequest(parts map[string]string) (map[model.Category]string, error) {
	slots := make(map[model.Category]string, len(parts))
	for _, key := range slices.Sorted(maps.Keys(parts)) {
		cat, err := model.ParseCategory(key)
		if err != nil {
			return nil, errors.Join(model.ErrInvalidArgument, err)
		}
		id := strings.TrimSpace(parts[key])
		if id == "" {
			return nil, errors.Join(model.ErrInvalidArgument, fmt.Errorf("part id for slot %q is blank", key))
		}
		slots[cat] = id
	}
	return slots, nil
}

// ActiveFacetsFromRequest decodes facet selections. A JSON number is a range
// threshold, a list of strings is a checkbox selection and null clears the
// facet.
func ActiveFacetsFromRequest(raw map[string]json.RawMessage) (model.ActiveFacets, error) {
	active := make(model.ActiveFacets, len(raw))
	for id, msg := range raw {
		msg = bytes.TrimSpace(msg)
		if len(msg) == 0 || bytes.Equal(msg, []byte("null")) {
			continue
		}

		switch msg[0] {
		case '[':
			var options []string
			if err := json.Unmarshal(msg, &options); err != nil {
				return nil, errors.Join(model.ErrInvalidArgument,
					fmt.Errorf("active facet %q: options must be a list of strings", id))
			}
			active[id] = model.OptionsValue(options...)
		default:
			var threshold float64
			if err := json.Unmarshal(msg, &threshold); err != nil {
				return nil, errors.Join(model.ErrInvalidArgument,
					fmt.Errorf("active facet %q: expected a number or a list of strings", id))
			}
			active[id] = model.RangeValue(threshold)
		}
	}
	return active, nil
}

func CandidatesRequestToCriteria(req CandidatesRequest) (model.FilterCriteria, error) {
	active, err := ActiveFacetsFromRequest(req.ActiveFacets)
	if err != nil {
		return model.FilterCriteria{}, err
	}

	return model.FilterCriteria{
		SearchText:     req.SearchText,
		CompatibleOnly: req.CompatibleOnly,
		ActiveFacets:   active,
	}, nil
}

func CategoriesToResponse(categories []model.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{Name: c.String(), Slug: c.Slug()})
	}
	return out
}

func PartToResponse(p *model.Part) PartResponse {
	specs := make(map[string]any, len(p.Specs))
	for key, v := range p.Specs {
		if v.IsZero() {
			continue
		}
		specs[key] = v.Value()
	}

	return PartResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category.String(),
		Price:        p.Price,
		Wattage:      p.Wattage,
		Manufacturer: p.Manufacturer,
		InStock:      p.InStock,
		Store:        p.Store,
		Description:  p.Description,
		Specs:        specs,
	}
}

func PartsToResponse(parts []*model.Part) []PartResponse {
	out := make([]PartResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, PartToResponse(p))
	}
	return out
}

func ReportToResponse(r model.ValidationReport) ReportResponse {
	warnings := r.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	violations := make([]ViolationResponse, 0, len(r.Violations))
	for _, v := range r.Violations {
		violations = append(violations, ViolationResponse{
			RuleID:   v.RuleID,
			Severity: string(v.Severity),
			Message:  v.Message,
		})
	}

	return ReportResponse{
		TotalPrice:   r.TotalPrice,
		TotalWattage: r.TotalWattage,
		Compatible:   r.Compatible,
		Warnings:     warnings,
		Violations:   violations,
	}
}

func FacetsToResponse(defs []model.FacetDefinition) []FacetResponse {
	out := make([]FacetResponse, 0, len(defs))
	for _, d := range defs {
		f := FacetResponse{
			ID:    d.ID,
			Label: d.Label,
			Kind:  string(d.Kind),
		}

		switch d.Kind {
		case model.FacetKindRange:
			from, to, step := d.Range.Min, d.Range.Max, d.Range.Step
			f.Min, f.Max, f.Step = &from, &to, &step
			f.Unit = d.Range.Unit
		case model.FacetKindCheckbox:
			f.Options = append([]string(nil), d.Checkbox.Options...)
		}
		out = append(out, f)
	}
	return out
}
