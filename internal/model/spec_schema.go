package model

import (
	"fmt"
	"sort"
	"strings"
)

// Spec keys referenced by compatibility rules and facets.
const (
	SpecSocket             = "Socket"
	SpecMemoryType         = "Memory Type"
	SpecFormFactor         = "Form Factor"
	SpecWattage            = "Wattage"
	SpecLength             = "Length"
	SpecMaxGPULength       = "Max GPU Length"
	SpecType               = "Type"
	SpecHeight             = "Height"
	SpecCores              = "Cores"
	SpecTDP                = "TDP"
	SpecBoostClock         = "Boost Clock"
	SpecIntegratedGraphics = "Integrated Graphics"
	SpecVRAM               = "VRAM"
	SpecSidePanel          = "Side Panel"
	SpecColor              = "Color"
	SpecVolume             = "Volume"
	SpecWiFi               = "WiFi"
	SpecChipset            = "Chipset"
	SpecSpeed              = "Speed"
	SpecCapacity           = "Capacity"
	SpecRGB                = "RGB"
	SpecRadiatorSize       = "Radiator Size"
	SpecEfficiency         = "Efficiency"
	SpecModular            = "Modular"
	SpecSize               = "Size"
	SpecPack               = "Pack"
)

// SpecSchema lists the allowed spec keys per category with their kinds.
var SpecSchema = map[Category]map[string]SpecKind{
	CategoryCase: {
		SpecFormFactor:   SpecKindString,
		SpecSidePanel:    SpecKindString,
		SpecColor:        SpecKindString,
		SpecMaxGPULength: SpecKindNumber,
		SpecVolume:       SpecKindString,
	},
	CategoryCPU: {
		SpecSocket:             SpecKindString,
		SpecCores:              SpecKindNumber,
		SpecBoostClock:         SpecKindString,
		SpecTDP:                SpecKindNumber,
		SpecIntegratedGraphics: SpecKindString,
	},
	CategoryMotherboard: {
		SpecSocket:     SpecKindString,
		SpecFormFactor: SpecKindString,
		SpecMemoryType: SpecKindString,
		SpecWiFi:       SpecKindString,
		SpecChipset:    SpecKindString,
	},
	CategoryGPU: {
		SpecVRAM:       SpecKindNumber,
		SpecLength:     SpecKindNumber,
		SpecBoostClock: SpecKindNumber,
	},
	CategoryRAM: {
		SpecSpeed:      SpecKindNumber,
		SpecMemoryType: SpecKindString,
		SpecCapacity:   SpecKindString,
		SpecRGB:        SpecKindString,
	},
	CategoryCooler: {
		SpecRadiatorSize: SpecKindString,
		SpecType:         SpecKindString,
		SpecHeight:       SpecKindNumber,
	},
	CategoryStorage: {
		SpecType:     SpecKindString,
		SpecCapacity: SpecKindString,
	},
	CategoryPSU: {
		SpecEfficiency: SpecKindString,
		SpecModular:    SpecKindString,
		SpecWattage:    SpecKindNumber,
	},
	CategoryFan: {
		SpecRGB:  SpecKindString,
		SpecSize: SpecKindString,
		SpecPack: SpecKindString,
	},
}

// SpecKindOf reports the declared kind of key for category.
func SpecKindOf(category Category, key string) (SpecKind, bool) {
	keys, ok := SpecSchema[category]
	if !ok {
		return 0, false
	}
	k, ok := keys[key]
	return k, ok
}

// ValidateSpecs rejects keys the category does not declare and values of the wrong kind.
func ValidateSpecs(category Category, specs Specs) error {
	keys, ok := SpecSchema[category]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	var problems []string
	for key, v := range specs {
		want, ok := keys[key]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("unknown key %q", key))
		case v.IsZero():
			problems = append(problems, fmt.Sprintf("empty value for %q", key))
		case v.Kind() != want:
			problems = append(problems, fmt.Sprintf("%q must be %s, got %s", key, want, v.Kind()))
		}
	}
	if len(problems) == 0 {
		return nil
	}

	sort.Strings(problems)
	return fmt.Errorf("%w: %s: %s", ErrInvalidSpec, category, strings.Join(problems, "; "))
}
