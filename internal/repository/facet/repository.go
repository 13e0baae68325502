// Package facet serves the static side-panel filter schema.
package facet

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/you-humble/pcbuilder/internal/model"
)

//go:embed facets.yaml
var defaultFacetsYAML []byte

type facetRecord struct {
	ID      string   `yaml:"id"`
	Label   string   `yaml:"label"`
	Kind    string   `yaml:"kind"`
	Min     float64  `yaml:"min"`
	Max     float64  `yaml:"max"`
	Step    float64  `yaml:"step"`
	Unit    string   `yaml:"unit"`
	Options []string `yaml:"options"`
}

type repository struct {
	defs map[model.Category][]model.FacetDefinition
}

// NewFacetRepository loads the embedded schema.
func NewFacetRepository() (*repository, error) {
	return Parse(defaultFacetsYAML)
}

// Parse decodes a schema document keyed by category and validates every
// definition.
func Parse(data []byte) (*repository, error) {
	const op = "facet.Parse"

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc map[string][]facetRecord
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	r := &repository{defs: make(map[model.Category][]model.FacetDefinition, len(doc))}
	for key, records := range doc {
		cat := model.Category(key)
		if !cat.Valid() {
			return nil, fmt.Errorf("%s: %w: %w: %q", op, model.ErrInvalidFacet, model.ErrUnknownCategory, key)
		}

		seen := make(map[string]struct{}, len(records))
		defs := make([]model.FacetDefinition, 0, len(records))
		for _, rec := range records {
			d := rec.toModel()
			if err := d.Validate(cat); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			if _, dup := seen[d.ID]; dup {
				return nil, fmt.Errorf("%s: %w: %s: duplicate id %q", op, model.ErrInvalidFacet, cat, d.ID)
			}
			seen[d.ID] = struct{}{}
			defs = append(defs, d)
		}
		r.defs[cat] = defs
	}
	return r, nil
}

// FacetDefinitions returns a copy of the schema for category, empty for an
// unknown one.
func (r *repository) FacetDefinitions(category model.Category) []model.FacetDefinition {
	defs := r.defs[category]
	out := make([]model.FacetDefinition, len(defs))
	for i, d := range defs {
		d.Checkbox.Options = slices.Clone(d.Checkbox.Options)
		out[i] = d
	}
	return out
}

func (rec facetRecord) toModel() model.FacetDefinition {
	d := model.FacetDefinition{
		ID:    rec.ID,
		Label: rec.Label,
		Kind:  model.FacetKind(rec.Kind),
	}
	switch d.Kind {
	case model.FacetKindRange:
		d.Range = model.RangeFacet{Min: rec.Min, Max: rec.Max, Step: rec.Step, Unit: rec.Unit}
	case model.FacetKindCheckbox:
		d.Checkbox = model.CheckboxFacet{Options: rec.Options}
	}
	return d
}
