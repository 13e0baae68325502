package model

type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

func (s Severity) Valid() bool {
	return s == SeverityHard || s == SeveritySoft
}

// Violation is one fired rule.
type Violation struct {
	RuleID   string
	Severity Severity
	Message  string
}

type ValidationReport struct {
	TotalPrice   float64
	TotalWattage float64
	// False iff at least one hard rule fired.
	Compatible bool
	// Messages of every fired rule in rule table order. Never nil.
	Warnings   []string
	Violations []Violation
}

// HardViolations returns the violations that break compatibility.
func (r ValidationReport) HardViolations() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == SeverityHard {
			out = append(out, v)
		}
	}
	return out
}
