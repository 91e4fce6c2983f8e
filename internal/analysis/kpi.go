package analysis

import "pv-battery-estimator/internal/simulator"

// KPIs are ratios derived from a day's simulated totals.
type KPIs struct {
	// SelfConsumptionRate is the share of generation used on site, directly or via the battery.
	SelfConsumptionRate float64
	// SelfSufficiency is the share of consumption not bought from the grid.
	SelfSufficiency float64
	// BatteryCycles is the energy stored divided by the battery capacity.
	BatteryCycles float64
}

// ComputeKPIs derives the ratios for a result; undefined ratios are zero.
func ComputeKPIs(res *simulator.Result, capacity float64) KPIs {
	var k KPIs
	if res == nil {
		return k
	}
	t := res.Totals
	if t.Generated > 0 {
		k.SelfConsumptionRate = (t.Generated - t.Sold) / t.Generated
	}
	if t.Consumption > 0 {
		k.SelfSufficiency = (t.SelfConsumed + t.BatteryUsed) / t.Consumption
	}
	if capacity > 0 {
		k.BatteryCycles = t.Stored / capacity
	}
	return k
}
