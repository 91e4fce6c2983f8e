package analysis

import (
	"sort"

	"pv-battery-estimator/internal/simulator"
)

// Scenario is one simulated household variation.
type Scenario struct {
	Name     string
	Capacity float64
	Result   *simulator.Result
}

// RankedScenario is a scenario with its position and KPIs.
type RankedScenario struct {
	Scenario
	Rank int
	KPIs KPIs
}

// RankBySavings sorts scenarios by total savings, best first. Ties keep input order.
func RankBySavings(scenarios []Scenario) []RankedScenario {
	out := make([]RankedScenario, 0, len(scenarios))
	for _, s := range scenarios {
		if s.Result == nil {
			continue
		}
		out = append(out, RankedScenario{Scenario: s, KPIs: ComputeKPIs(s.Result, s.Capacity)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.TotalSavings > out[j].Result.TotalSavings
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
