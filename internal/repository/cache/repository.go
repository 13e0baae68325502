package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/you-humble/pcbuilder/internal/model"
)

type PartCatalog interface {
	PartsByCategory(ctx context.Context, category model.Category) ([]*model.Part, error)
	PartByID(ctx context.Context, id string) (*model.Part, error)
}

// repository is a read-through cache over a slower catalog. Errors and
// misses are never cached.
type repository struct {
	next       PartCatalog
	byCategory *expirable.LRU[model.Category, []*model.Part]
	byID       *expirable.LRU[string, *model.Part]
}

// NewPartRepository wraps next with LRU caches of size entries each whose
// entries expire after ttl. A zero ttl keeps entries until evicted.
func NewPartRepository(next PartCatalog, size int, ttl time.Duration) *repository {
	return &repository{
		next:       next,
		byCategory: expirable.NewLRU[model.Category, []*model.Part](size, nil, ttl),
		byID:       expirable.NewLRU[string, *model.Part](size, nil, ttl),
	}
}

func (r *repository) PartsByCategory(ctx context.Context, category model.Category) ([]*model.Part, error) {
	if cached, ok := r.byCategory.Get(category); ok {
		return append([]*model.Part(nil), cached...), nil
	}

	parts, err := r.next.PartsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	r.byCategory.Add(category, append([]*model.Part(nil), parts...))
	for _, p := range parts {
		if p != nil {
			r.byID.Add(p.ID, p)
		}
	}
	return parts, nil
}

func (r *repository) PartByID(ctx context.Context, id string) (*model.Part, error) {
	if cached, ok := r.byID.Get(id); ok {
		return cached, nil
	}

	p, err := r.next.PartByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.byID.Add(id, p)
	return p, nil
}

// Purge drops every cached entry.
func (r *repository) Purge() {
	r.byCategory.Purge()
	r.byID.Purge()
}
