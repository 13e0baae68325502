// Package rules holds the cross-part compatibility rule table.
package rules

import (
	"errors"
	"fmt"

	"github.com/you-humble/pcbuilder/internal/model"
)

// Rule is one row of the compatibility table. Violated and Message are only
// called on configurations for which Applies reports true.
type Rule struct {
	ID       string
	Severity model.Severity
	// Categories that must all be present for the rule to apply.
	Requires []model.Category
	// Categories that must all be empty for the rule to apply.
	Absent []model.Category
	// Categories whose candidates are narrowed by this rule in compatibility
	// mode. Must be a subset of Requires.
	Candidates []model.Category
	Violated   func(cfg model.Configuration) bool
	Message    func(cfg model.Configuration) string
}

func (r Rule) Applies(cfg model.Configuration) bool {
	for _, c := range r.Requires {
		if !cfg.Has(c) {
			return false
		}
	}
	for _, c := range r.Absent {
		if cfg.Has(c) {
			return false
		}
	}
	return true
}

// Filters reports whether the rule narrows candidates of category.
func (r Rule) Filters(category model.Category) bool {
	for _, c := range r.Candidates {
		if c == category {
			return true
		}
	}
	return false
}

func (r Rule) validate() error {
	var errs []error
	if r.ID == "" {
		errs = append(errs, errors.New("empty id"))
	}
	if !r.Severity.Valid() {
		errs = append(errs, fmt.Errorf("unknown severity %q", r.Severity))
	}
	if r.Violated == nil || r.Message == nil {
		errs = append(errs, errors.New("predicate and message are required"))
	}

	required := make(map[model.Category]struct{}, len(r.Requires))
	for _, c := range r.Requires {
		if !c.Valid() {
			errs = append(errs, fmt.Errorf("requires unknown category %q", c))
		}
		required[c] = struct{}{}
	}
	for _, c := range r.Absent {
		if !c.Valid() {
			errs = append(errs, fmt.Errorf("absent names unknown category %q", c))
		}
		if _, ok := required[c]; ok {
			errs = append(errs, fmt.Errorf("%q is both required and absent", c))
		}
	}
	for _, c := range r.Candidates {
		if _, ok := required[c]; !ok {
			errs = append(errs, fmt.Errorf("candidate category %q is not required", c))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w %q: %w", model.ErrInvalidRule, r.ID, errors.Join(errs...))
}

// Set is an ordered, validated rule table.
type Set struct {
	rules []Rule
}

// NewSet validates every rule and keeps them in the given order.
func NewSet(rules ...Rule) (*Set, error) {
	seen := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		if err := r.validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", model.ErrInvalidRule, r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	out := make([]Rule, len(rules))
	copy(out, rules)
	return &Set{rules: out}, nil
}

// Rules returns the table in evaluation order.
func (s *Set) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

func (s *Set) Len() int { return len(s.rules) }

// CandidateRules returns the rules that narrow candidates of category.
func (s *Set) CandidateRules(category model.Category) []Rule {
	var out []Rule
	for _, r := range s.rules {
		if r.Filters(category) {
			out = append(out, r)
		}
	}
	return out
}
