package validation

import (
	"github.com/you-humble/pcbuilder/internal/model"
	"github.com/you-humble/pcbuilder/internal/rules"
)

type service struct {
	rules []rules.Rule
}

// NewValidationService evaluates configurations against set. A nil set
// means the default rule table.
func NewValidationService(set *rules.Set) *service {
	if set == nil {
		set = rules.Default()
	}
	return &service{rules: set.Rules()}
}

// Validate sums the present parts and evaluates every applicable rule once,
// in table order. It has no side effects.
func (s *service) Validate(cfg model.Configuration) model.ValidationReport {
	report := model.ValidationReport{
		Compatible: true,
		Warnings:   []string{},
	}

	for _, p := range cfg.Parts() {
		report.TotalPrice += p.Price
		report.TotalWattage += p.Wattage
	}

	for _, r := range s.rules {
		if !r.Applies(cfg) || !r.Violated(cfg) {
			continue
		}

		msg := r.Message(cfg)
		report.Warnings = append(report.Warnings, msg)
		report.Violations = append(report.Violations, model.Violation{
			RuleID:   r.ID,
			Severity: r.Severity,
			Message:  msg,
		})
		if r.Severity == model.SeverityHard {
			report.Compatible = false
		}
	}

	return report
}
