package strategy

import "pv-battery-estimator/internal/model"

const HourlyName = "hourly"

// Hourly charges each hour's residual grid import at that hour's tariff.
type Hourly struct{}

func (Hourly) Name() string { return HourlyName }

func (Hourly) Description() string {
	return "Charges each hour's residual grid import at that hour's tariff."
}

func (Hourly) GridCost(hours []model.HourResult, tariffKWh []float64) float64 {
	mustMatch(hours, tariffKWh)
	cost := 0.0
	for i, h := range hours {
		if h.GridImport > 0 {
			cost += h.GridImport * tariffKWh[i]
		}
	}
	return cost
}
