package model

import (
	"fmt"
	"slices"
)

type FacetKind string

const (
	FacetKindRange    FacetKind = "range"
	FacetKindCheckbox FacetKind = "checkbox"
)

// Facet ids that address part fields instead of the spec bag.
const (
	FacetPrice        = "price"
	FacetManufacturer = "manufacturer"
)

type RangeFacet struct {
	Min  float64
	Max  float64
	Step float64
	Unit string
}

type CheckboxFacet struct {
	Options []string
}

type FacetDefinition struct {
	// Facet id: "price", "manufacturer" or a spec key of the category.
	ID       string
	Label    string
	Kind     FacetKind
	Range    RangeFacet
	Checkbox CheckboxFacet
}

func (d FacetDefinition) Validate(category Category) error {
	switch {
	case d.ID == "":
		return fmt.Errorf("%w: %s: empty id", ErrInvalidFacet, category)
	case d.ID != FacetPrice && d.ID != FacetManufacturer:
		if _, ok := SpecKindOf(category, d.ID); !ok {
			return fmt.Errorf("%w: %s: %q is not a spec of the category", ErrInvalidFacet, category, d.ID)
		}
	}

	switch d.Kind {
	case FacetKindRange:
		if d.Range.Min > d.Range.Max {
			return fmt.Errorf("%w: %s/%s: min %v > max %v", ErrInvalidFacet, category, d.ID, d.Range.Min, d.Range.Max)
		}
		if d.Range.Step < 0 {
			return fmt.Errorf("%w: %s/%s: negative step", ErrInvalidFacet, category, d.ID)
		}
	case FacetKindCheckbox:
		if len(d.Checkbox.Options) == 0 {
			return fmt.Errorf("%w: %s/%s: no options", ErrInvalidFacet, category, d.ID)
		}
	default:
		return fmt.Errorf("%w: %s/%s: unknown kind %q", ErrInvalidFacet, category, d.ID, d.Kind)
	}
	return nil
}

// Value resolves the facet against a part: price and manufacturer read part
// fields, every other id reads the spec bag.
func (d FacetDefinition) Value(p *Part) (SpecValue, bool) {
	switch d.ID {
	case FacetPrice:
		return NumberSpec(p.Price), true
	case FacetManufacturer:
		if p.Manufacturer == "" {
			return SpecValue{}, false
		}
		return StringSpec(p.Manufacturer), true
	default:
		return p.Specs.Get(d.ID)
	}
}

// FacetValue is an active facet: a numeric threshold or a set of options.
type FacetValue struct {
	threshold *float64
	options   []string
}

func RangeValue(v float64) FacetValue { return FacetValue{threshold: &v} }

func OptionsValue(options ...string) FacetValue {
	return FacetValue{options: slices.Clone(options)}
}

func (v FacetValue) Threshold() (float64, bool) {
	if v.threshold == nil {
		return 0, false
	}
	return *v.threshold, true
}

func (v FacetValue) Options() ([]string, bool) {
	if v.threshold != nil || v.options == nil {
		return nil, false
	}
	return slices.Clone(v.options), true
}

func (v FacetValue) IsRange() bool { return v.threshold != nil }

// ActiveFacets maps a facet id to its active value.
type ActiveFacets map[string]FacetValue

func (a ActiveFacets) clone() ActiveFacets {
	out := make(ActiveFacets, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	return out
}

func (a ActiveFacets) WithRange(id string, threshold float64) ActiveFacets {
	out := a.clone()
	out[id] = RangeValue(threshold)
	return out
}

// Toggle flips option in the checkbox facet id. The first selection starts a
// single-element set, selecting an active option removes it, and an emptied
// set removes the key. A non-checkbox value under id is replaced.
func (a ActiveFacets) Toggle(id, option string) ActiveFacets {
	out := a.clone()

	current, ok := out[id].Options()
	if !ok || len(current) == 0 {
		out[id] = OptionsValue(option)
		return out
	}

	if i := slices.Index(current, option); i >= 0 {
		current = slices.Delete(current, i, i+1)
		if len(current) == 0 {
			delete(out, id)
			return out
		}
		out[id] = OptionsValue(current...)
		return out
	}

	out[id] = OptionsValue(append(current, option)...)
	return out
}

func (a ActiveFacets) Without(id string) ActiveFacets {
	out := a.clone()
	delete(out, id)
	return out
}

type FilterCriteria struct {
	SearchText     string
	CompatibleOnly bool
	ActiveFacets   ActiveFacets
}
