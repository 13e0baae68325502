// Package memory is a read-only parts catalog held in process memory.
package memory

import (
	"context"
	"fmt"

	"github.com/you-humble/pcbuilder/internal/model"
)

type repository struct {
	byCategory map[model.Category][]*model.Part
	byID       map[string]*model.Part
}

// NewPartRepository validates parts and indexes them by category and id.
// Insertion order is kept within a category.
func NewPartRepository(parts []*model.Part) (*repository, error) {
	const op = "memory.NewPartRepository"

	r := &repository{
		byCategory: make(map[model.Category][]*model.Part),
		byID:       make(map[string]*model.Part, len(parts)),
	}
	for _, p := range parts {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("%s: %w: duplicate id %q", op, model.ErrInvalidPart, p.ID)
		}

		cp := p.Clone()
		r.byID[cp.ID] = cp
		r.byCategory[cp.Category] = append(r.byCategory[cp.Category], cp)
	}
	return r, nil
}

func (r *repository) PartsByCategory(ctx context.Context, category model.Category) ([]*model.Part, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parts := r.byCategory[category]
	out := make([]*model.Part, len(parts))
	copy(out, parts)
	return out, nil
}

func (r *repository) PartByID(ctx context.Context, id string) (*model.Part, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrPartNotFound, id)
	}
	return p, nil
}

// Len is the number of parts in the catalog.
func (r *repository) Len() int { return len(r.byID) }
