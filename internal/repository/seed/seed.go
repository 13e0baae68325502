// Package seed decodes the starter parts catalog.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/you-humble/pcbuilder/internal/model"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

type catalogDocument struct {
	Parts []partRecord `yaml:"parts"`
}

type partRecord struct {
	ID           string         `yaml:"id"`
	Name         string         `yaml:"name"`
	Category     string         `yaml:"category"`
	Price        float64        `yaml:"price"`
	Wattage      float64        `yaml:"wattage"`
	Manufacturer string         `yaml:"manufacturer"`
	Store        string         `yaml:"store"`
	Description  string         `yaml:"description"`
	InStock      bool           `yaml:"in_stock"`
	Specs        map[string]any `yaml:"specs"`
}

// Parts returns the embedded catalog.
func Parts() ([]*model.Part, error) {
	return Parse(defaultCatalogYAML)
}

// Load reads a catalog document from path, or the embedded one when path is
// empty.
func Load(path string) ([]*model.Part, error) {
	if path == "" {
		return Parts()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed.Load: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalog document. Every part is checked against the
// SpecSchema of its category and ids must be unique.
func Parse(data []byte) ([]*model.Part, error) {
	const op = "seed.Parse"

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc catalogDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	seen := make(map[string]struct{}, len(doc.Parts))
	out := make([]*model.Part, 0, len(doc.Parts))
	for i, rec := range doc.Parts {
		p, err := rec.toModel()
		if err != nil {
			return nil, fmt.Errorf("%s: part #%d: %w", op, i, err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%s: %w: duplicate id %q", op, model.ErrInvalidPart, p.ID)
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

func (r partRecord) toModel() (*model.Part, error) {
	specs := make(model.Specs, len(r.Specs))
	for k, v := range r.Specs {
		sv, err := model.SpecFromAny(v)
		if err != nil {
			return nil, fmt.Errorf("spec %q: %w", k, err)
		}
		specs[k] = sv
	}

	return &model.Part{
		ID:           r.ID,
		Name:         r.Name,
		Category:     model.Category(r.Category),
		Price:        r.Price,
		Wattage:      r.Wattage,
		Manufacturer: r.Manufacturer,
		InStock:      r.InStock,
		Store:        r.Store,
		Description:  r.Description,
		Specs:        specs,
	}, nil
}
