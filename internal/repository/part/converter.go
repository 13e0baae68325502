package repository

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/you-humble/pcbuilder/internal/model"
)

func EntityToModel(e *PartEntity) (*model.Part, error) {
	if e == nil {
		return nil, nil
	}

	specs := make(model.Specs, len(e.Specs))
	for k, v := range e.Specs {
		sv, err := model.SpecFromAny(v)
		if err != nil {
			return nil, fmt.Errorf("part %q spec %q: %w", e.ID, k, err)
		}
		specs[k] = sv
	}

	return &model.Part{
		ID:           e.ID,
		Name:         e.Name,
		Category:     model.Category(e.Category),
		Price:        e.Price,
		Wattage:      e.Wattage,
		Manufacturer: e.Manufacturer,
		InStock:      e.InStock,
		Store:        e.Store,
		Description:  e.Description,
		Specs:        specs,
	}, nil
}

func EntityFromModel(p *model.Part, seq int64) *PartEntity {
	if p == nil {
		return nil
	}

	var specs map[string]any
	if len(p.Specs) > 0 {
		specs = make(map[string]any, len(p.Specs))
		for k, v := range p.Specs {
			specs[k] = v.Value()
		}
	}

	return &PartEntity{
		ID:               p.ID,
		Name:             p.Name,
		NameNorm:         normalize(p.Name),
		Category:         string(p.Category),
		Price:            p.Price,
		Wattage:          p.Wattage,
		Manufacturer:     p.Manufacturer,
		ManufacturerNorm: normalize(p.Manufacturer),
		InStock:          p.InStock,
		Store:            p.Store,
		Description:      p.Description,
		Specs:            specs,
		Seq:              seq,
	}
}

// BuildMongoFilter selects parts of one category.
func BuildMongoFilter(category model.Category) bson.M {
	return bson.M{"category": string(category)}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
