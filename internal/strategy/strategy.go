package strategy

import (
	"fmt"
	"sort"
	"strings"

	"pv-battery-estimator/internal/model"
)

// CostStrategy prices the energy bought from the grid once PV and battery
// dispatch for the day are known.
type CostStrategy interface {
	Name() string
	Description() string
	GridCost(hours []model.HourResult, tariffKWh []float64) float64
}

// Default is the strategy used when a request names none.
const Default = ReferenceName

var registry = map[string]CostStrategy{
	ReferenceName: Reference{},
	HourlyName:    Hourly{},
}

// Lookup returns the strategy registered under name. An empty name selects Default.
func Lookup(name string) (CostStrategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = Default
	}
	s, ok := registry[name]
	if !ok {
		return nil, model.InputFormatError("unsupported cost mode %q (expected one of %s)", name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names lists the registered strategy names in stable order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// All returns the registered strategies ordered by name.
func All() []CostStrategy {
	names := Names()
	out := make([]CostStrategy, 0, len(names))
	for _, n := range names {
		out = append(out, registry[n])
	}
	return out
}

func mustMatch(hours []model.HourResult, tariffKWh []float64) {
	if len(hours) != len(tariffKWh) {
		panic(fmt.Errorf("cost strategy: %d hours but %d tariff values", len(hours), len(tariffKWh)))
	}
}
