package rules

import (
	"fmt"

	"github.com/you-humble/pcbuilder/internal/model"
)

const (
	IDSocketMatch       = "socket-match"
	IDMemoryTypeMatch   = "memory-type-match"
	IDPowerInsufficient = "power-insufficient"
	IDPowerHeadroomLow  = "power-headroom-low"
	IDPSUMissing        = "psu-missing"
	IDGPULength         = "gpu-length"
	IDCoolerHeight      = "cooler-height"
)

const (
	// DefaultMaxGPULength applies to cases that do not declare a limit.
	DefaultMaxGPULength = 999
	// CoolerClearance is the height limit for air coolers. It is the same for
	// every case; cases carry no clearance spec.
	CoolerClearance = 165
	// HeadroomRatio is the load share above which a PSU is considered tight.
	HeadroomRatio = 0.9
)

// Default returns the built-in rule table.
func Default() *Set {
	s, err := NewSet(
		socketMatch(),
		memoryTypeMatch(),
		powerInsufficient(),
		powerHeadroomLow(),
		psuMissing(),
		gpuLength(),
		coolerHeight(),
	)
	if err != nil {
		panic(err)
	}
	return s
}

func part(cfg model.Configuration, c model.Category) *model.Part {
	p, _ := cfg.Part(c)
	return p
}

// stringPair returns the spec key of two present parts when both are known.
func stringPair(cfg model.Configuration, a, b model.Category, key string) (string, string, bool) {
	pa, pb := part(cfg, a), part(cfg, b)
	if pa == nil || pb == nil {
		return "", "", false
	}
	va, okA := pa.Specs.Get(key)
	vb, okB := pb.Specs.Get(key)
	if !okA || !okB {
		return "", "", false
	}
	return va.Text(), vb.Text(), true
}

func socketMatch() Rule {
	return Rule{
		ID:         IDSocketMatch,
		Severity:   model.SeverityHard,
		Requires:   []model.Category{model.CategoryCPU, model.CategoryMotherboard},
		Candidates: []model.Category{model.CategoryCPU, model.CategoryMotherboard},
		Violated: func(cfg model.Configuration) bool {
			cpu, mb, ok := stringPair(cfg, model.CategoryCPU, model.CategoryMotherboard, model.SpecSocket)
			return ok && cpu != mb
		},
		Message: func(cfg model.Configuration) string {
			cpu, mb, _ := stringPair(cfg, model.CategoryCPU, model.CategoryMotherboard, model.SpecSocket)
			return fmt.Sprintf("Incompatible Socket: CPU (%s) does not fit Motherboard (%s).", cpu, mb)
		},
	}
}

// The candidate side is RAM only: motherboards are not narrowed by a chosen
// memory kit.
func memoryTypeMatch() Rule {
	return Rule{
		ID:         IDMemoryTypeMatch,
		Severity:   model.SeverityHard,
		Requires:   []model.Category{model.CategoryRAM, model.CategoryMotherboard},
		Candidates: []model.Category{model.CategoryRAM},
		Violated: func(cfg model.Configuration) bool {
			ram, mb, ok := stringPair(cfg, model.CategoryRAM, model.CategoryMotherboard, model.SpecMemoryType)
			return ok && ram != mb
		},
		Message: func(cfg model.Configuration) string {
			ram, mb, _ := stringPair(cfg, model.CategoryRAM, model.CategoryMotherboard, model.SpecMemoryType)
			return fmt.Sprintf("Incompatible RAM: Motherboard requires %s, RAM is %s.", mb, ram)
		},
	}
}

func powerInsufficient() Rule {
	return Rule{
		ID:       IDPowerInsufficient,
		Severity: model.SeverityHard,
		Requires: []model.Category{model.CategoryPSU},
		Violated: func(cfg model.Configuration) bool {
			return TotalWattage(cfg) > PSUCapacity(part(cfg, model.CategoryPSU))
		},
		Message: func(cfg model.Configuration) string {
			return fmt.Sprintf("Insufficient Power: estimated load of %sW exceeds PSU capacity (~%sW).",
				formatNumber(TotalWattage(cfg)), formatNumber(PSUCapacity(part(cfg, model.CategoryPSU))))
		},
	}
}

func powerHeadroomLow() Rule {
	return Rule{
		ID:       IDPowerHeadroomLow,
		Severity: model.SeveritySoft,
		Requires: []model.Category{model.CategoryPSU},
		Violated: func(cfg model.Configuration) bool {
			total, capacity := TotalWattage(cfg), PSUCapacity(part(cfg, model.CategoryPSU))
			return total > capacity*HeadroomRatio && total <= capacity
		},
		Message: func(model.Configuration) string {
			return "Low Power Headroom: estimated load is above 90% of PSU capacity."
		},
	}
}

func psuMissing() Rule {
	return Rule{
		ID:       IDPSUMissing,
		Severity: model.SeveritySoft,
		Absent:   []model.Category{model.CategoryPSU},
		Violated: func(cfg model.Configuration) bool {
			return TotalWattage(cfg) > 0
		},
		Message: func(model.Configuration) string {
			return "No Power Supply Unit (PSU) selected."
		},
	}
}

// gpuLengths returns the GPU length and the case limit. A GPU without a
// length makes the rule inapplicable; a case without a limit gets the default.
func gpuLengths(cfg model.Configuration) (float64, float64, bool) {
	gpu, cs := part(cfg, model.CategoryGPU), part(cfg, model.CategoryCase)
	if gpu == nil || cs == nil {
		return 0, 0, false
	}
	length, ok := gpu.Specs.Number(model.SpecLength)
	if !ok {
		return 0, 0, false
	}
	limit, ok := cs.Specs.Number(model.SpecMaxGPULength)
	if !ok || limit <= 0 {
		limit = DefaultMaxGPULength
	}
	return length, limit, true
}

func gpuLength() Rule {
	return Rule{
		ID:         IDGPULength,
		Severity:   model.SeverityHard,
		Requires:   []model.Category{model.CategoryGPU, model.CategoryCase},
		Candidates: []model.Category{model.CategoryGPU, model.CategoryCase},
		Violated: func(cfg model.Configuration) bool {
			length, limit, ok := gpuLengths(cfg)
			return ok && length > limit
		},
		Message: func(cfg model.Configuration) string {
			length, limit, _ := gpuLengths(cfg)
			return fmt.Sprintf("GPU Clearance: GPU (%smm) exceeds the Case max GPU length (%smm).",
				formatNumber(length), formatNumber(limit))
		},
	}
}

func coolerHeight() Rule {
	return Rule{
		ID:       IDCoolerHeight,
		Severity: model.SeverityHard,
		Requires: []model.Category{model.CategoryCooler, model.CategoryCase},
		Violated: func(cfg model.Configuration) bool {
			cooler := part(cfg, model.CategoryCooler)
			if kind, _ := cooler.Specs.String(model.SpecType); kind != "Air" {
				return false
			}
			height, ok := cooler.Specs.Number(model.SpecHeight)
			return ok && height > CoolerClearance
		},
		Message: func(cfg model.Configuration) string {
			height, _ := part(cfg, model.CategoryCooler).Specs.Number(model.SpecHeight)
			return fmt.Sprintf("Cooler Height: Cooler (%smm) might not fit in the Case (limit ~%dmm).",
				formatNumber(height), CoolerClearance)
		},
	}
}

// formatNumber prints whole numbers without a fraction.
func formatNumber(v float64) string {
	return model.NumberSpec(v).Text()
}
