package rules

import (
	"regexp"
	"strconv"

	"github.com/you-humble/pcbuilder/internal/model"
)

// DefaultPSUCapacity is assumed when neither the specs nor the name of a PSU
// carries its wattage.
const DefaultPSUCapacity = 600

var psuNameWattage = regexp.MustCompile(`(\d{3,4})W?`)

// PSUCapacity resolves the rated output of a power supply: the positive
// Wattage spec, else the first 3-4 digit run in the name, else
// DefaultPSUCapacity.
func PSUCapacity(psu *model.Part) float64 {
	if psu == nil {
		return DefaultPSUCapacity
	}
	if w, ok := psu.Specs.Number(model.SpecWattage); ok && w > 0 {
		return w
	}
	if m := psuNameWattage.FindStringSubmatch(psu.Name); m != nil {
		if w, err := strconv.ParseFloat(m[1], 64); err == nil {
			return w
		}
	}
	return DefaultPSUCapacity
}

// TotalWattage sums the power draw of every present part.
func TotalWattage(cfg model.Configuration) float64 {
	var total float64
	for _, p := range cfg.Parts() {
		total += p.Wattage
	}
	return total
}
