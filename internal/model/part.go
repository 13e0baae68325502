package model

import (
	"errors"
	"fmt"
	"strings"
)

type Part struct {
	// Catalog-wide unique identifier.
	ID string
	// Human-readable part name.
	Name string
	// Slot the part occupies in a configuration.
	Category Category
	// Unit price in USD.
	Price float64
	// Estimated power draw in watts.
	Wattage float64
	// Manufacturer name.
	Manufacturer string
	InStock      bool
	// Store the listing comes from.
	Store       string
	Description string
	// Category-scoped spec bag, see SpecSchema.
	Specs Specs
}

// Validate checks the structural invariants of a catalog record.
func (p *Part) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil part", ErrInvalidPart)
	}

	var errs []error
	if strings.TrimSpace(p.ID) == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if !p.Category.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownCategory, p.Category))
	}
	if p.Price < 0 {
		errs = append(errs, fmt.Errorf("price must be >= 0, got %v", p.Price))
	}
	if p.Wattage < 0 {
		errs = append(errs, fmt.Errorf("wattage must be >= 0, got %v", p.Wattage))
	}
	if p.Category.Valid() {
		if err := ValidateSpecs(p.Category, p.Specs); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w %q: %w", ErrInvalidPart, p.ID, errors.Join(errs...))
}

func (p *Part) Clone() *Part {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Specs = p.Specs.Clone()
	return &cp
}
