package strategy

import "pv-battery-estimator/internal/model"

const ReferenceName = "reference"

// Reference is the legacy grid-cost figure served by /calcular since the
// first version: the unmet demand left after the last hour is priced at every
// hour's tariff. Demand left unmet in earlier hours is not charged.
type Reference struct{}

func (Reference) Name() string { return ReferenceName }

func (Reference) Description() string {
	return "Prices the final hour's leftover demand at every hourly tariff (legacy accounting, default)."
}

func (Reference) GridCost(hours []model.HourResult, tariffKWh []float64) float64 {
	mustMatch(hours, tariffKWh)
	if len(hours) == 0 {
		return 0
	}
	last := hours[len(hours)-1].GridImport
	if last <= 0 {
		return 0
	}
	cost := 0.0
	for _, t := range tariffKWh {
		cost += last * t
	}
	return cost
}
