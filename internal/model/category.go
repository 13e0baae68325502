package model

import (
	"fmt"
	"strings"
)

// Category is a slot of a build. The set is closed: see Categories.
type Category string

const (
	CategoryCase        Category = "Case"
	CategoryCPU         Category = "CPU"
	CategoryMotherboard Category = "Motherboard"
	CategoryGPU         Category = "GPU"
	CategoryRAM         Category = "RAM"
	CategoryCooler      Category = "CPU Cooler"
	CategoryStorage     Category = "Storage"
	CategoryPSU         Category = "Power Supply"
	CategoryFan         Category = "Case Fan"
)

var categories = [...]Category{
	CategoryCase,
	CategoryCPU,
	CategoryMotherboard,
	CategoryGPU,
	CategoryRAM,
	CategoryCooler,
	CategoryStorage,
	CategoryPSU,
	CategoryFan,
}

var categorySlugs = map[Category]string{
	CategoryCase:        "case",
	CategoryCPU:         "cpu",
	CategoryMotherboard: "motherboard",
	CategoryGPU:         "gpu",
	CategoryRAM:         "ram",
	CategoryCooler:      "cooler",
	CategoryStorage:     "storage",
	CategoryPSU:         "psu",
	CategoryFan:         "fan",
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories[:])
	return out
}

func (c Category) Valid() bool {
	_, ok := categorySlugs[c]
	return ok
}

func (c Category) Slug() string { return categorySlugs[c] }

func (c Category) String() string { return string(c) }

// ParseCategory accepts a category value or its slug, ignoring case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, categorySlugs[c]) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// index is the position of c in display order, -1 when c is unknown.
func (c Category) index() int {
	for i, cc := range categories {
		if cc == c {
			return i
		}
	}
	return -1
}
