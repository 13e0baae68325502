package candidate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/you-humble/pcbuilder/internal/model"
	"github.com/you-humble/pcbuilder/internal/rules"
	"github.com/you-humble/pcbuilder/platform/logger"
)

// CatalogProvider is the read-only parts catalog.
type CatalogProvider interface {
	PartsByCategory(ctx context.Context, category model.Category) ([]*model.Part, error)
}

// FacetSchemaProvider serves the static facet schema per category.
type FacetSchemaProvider interface {
	FacetDefinitions(category model.Category) []model.FacetDefinition
}

type service struct {
	catalog       CatalogProvider
	facets        FacetSchemaProvider
	rules         *rules.Set
	readDBTimeout time.Duration
}

func NewCandidateService(
	catalog CatalogProvider,
	facets FacetSchemaProvider,
	set *rules.Set,
	readDBTimeout time.Duration,
) *service {
	if set == nil {
		set = rules.Default()
	}
	return &service{
		catalog:       catalog,
		facets:        facets,
		rules:         set,
		readDBTimeout: readDBTimeout,
	}
}

func (s *service) Facets(category model.Category) []model.FacetDefinition {
	if !category.Valid() {
		return []model.FacetDefinition{}
	}
	defs := s.facets.FacetDefinitions(category)
	if defs == nil {
		return []model.FacetDefinition{}
	}
	return defs
}

// FilterCandidates narrows the catalog for category by text search, then
// compatibility with the chosen parts, then the active facets. Catalog order
// is kept. An unknown category yields an empty list.
func (s *service) FilterCandidates(
	ctx context.Context,
	category model.Category,
	cfg model.Configuration,
	criteria model.FilterCriteria,
) ([]*model.Part, error) {
	const op = "candidate.service.FilterCandidates"
	log := logger.With(
		logger.String("category", category.String()),
		logger.Bool("compatible_only", criteria.CompatibleOnly),
		logger.Int("active_facets", len(criteria.ActiveFacets)),
	)

	if !category.Valid() {
		log.Debug(ctx, "unknown category, no candidates")
		return []*model.Part{}, nil
	}

	if s.readDBTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.readDBTimeout)
		defer cancel()
	}

	all, err := s.catalog.PartsByCategory(ctx, category)
	if err != nil {
		log.Error(ctx, "catalog parts by category", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := lo.Filter(all, func(p *model.Part, _ int) bool {
		return p != nil && p.Category == category
	})
	out = lo.Filter(out, matchText(criteria.SearchText))
	if criteria.CompatibleOnly {
		out = lo.Filter(out, s.compatibleWith(category, cfg))
	}
	out = lo.Filter(out, s.matchFacets(category, criteria.ActiveFacets))

	log.Debug(ctx, "candidates filtered",
		logger.Int("catalog", len(all)),
		logger.Int("candidates", len(out)),
	)
	return out, nil
}

func matchText(text string) func(*model.Part, int) bool {
	q := strings.ToLower(strings.TrimSpace(text))
	return func(p *model.Part, _ int) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Manufacturer), q)
	}
}

// compatibleWith evaluates the candidate rules of category with the candidate
// substituted into cfg. Rules whose paired category is still empty impose no
// restriction.
func (s *service) compatibleWith(category model.Category, cfg model.Configuration) func(*model.Part, int) bool {
	active := lo.Filter(s.rules.CandidateRules(category), func(r rules.Rule, _ int) bool {
		return lo.EveryBy(r.Requires, func(c model.Category) bool {
			return c == category || cfg.Has(c)
		})
	})

	return func(p *model.Part, _ int) bool {
		if len(active) == 0 {
			return true
		}
		sub := cfg.With(p)
		for _, r := range active {
			if r.Applies(sub) && r.Violated(sub) {
				return false
			}
		}
		return true
	}
}

func (s *service) matchFacets(category model.Category, active model.ActiveFacets) func(*model.Part, int) bool {
	if len(active) == 0 {
		return func(*model.Part, int) bool { return true }
	}

	type check func(p *model.Part) bool
	var checks []check

	for _, d := range s.facets.FacetDefinitions(category) {
		v, ok := active[d.ID]
		if !ok {
			continue
		}

		switch d.Kind {
		case model.FacetKindRange:
			threshold, ok := v.Threshold()
			if !ok {
				continue
			}
			checks = append(checks, func(p *model.Part) bool {
				sv, ok := d.Value(p)
				if !ok {
					return false
				}
				n, ok := sv.AsNumber()
				return ok && n <= threshold
			})
		case model.FacetKindCheckbox:
			options, ok := v.Options()
			if !ok || len(options) == 0 {
				continue
			}
			checks = append(checks, func(p *model.Part) bool {
				sv, ok := d.Value(p)
				return ok && lo.Contains(options, sv.Text())
			})
		}
	}

	return func(p *model.Part, _ int) bool {
		for _, c := range checks {
			if !c(p) {
				return false
			}
		}
		return true
	}
}
