package simulator

import (
	"pv-battery-estimator/internal/model"
	"pv-battery-estimator/internal/strategy"

	"gonum.org/v1/gonum/stat"
)

// Option customises a simulation run.
type Option func(*options)

type options struct {
	cost strategy.CostStrategy
}

// WithCostStrategy selects how the grid cost with PV is computed.
func WithCostStrategy(s strategy.CostStrategy) Option {
	return func(o *options) {
		if s != nil {
			o.cost = s
		}
	}
}

// Step runs the dispatch policy for a single hour. It is a pure function of
// the battery charge entering the hour and the hour's inputs. Negative
// irradiance and irradiance outside daylight hours generate nothing.
func Step(charge float64, in model.HourInput, d model.Derived) (float64, model.HourResult) {
	irradiance := in.Irradiance
	if irradiance < 0 || !model.IsDaylight(in.Hour) {
		irradiance = 0
	}
	generated := (irradiance / 1000) * d.TotalPanelArea * d.PanelEfficiency
	consumption := d.DailyConsumption * in.ProfileWeight

	selfConsumed := min(generated, consumption)
	surplus := max(generated-selfConsumed, 0)
	unmet := consumption - selfConsumed

	batt := model.BatteryState{Charge: charge}

	stored, surplus := batt.Store(surplus, d.CapacityMax, d.BatteryEfficiency)

	sold := 0.0
	if surplus > 0 {
		sold = surplus
	}

	drawn, unmet := batt.Draw(unmet, d.CapacityMax, d.BatteryEfficiency)

	return batt.Charge, model.HourResult{
		Hour:          in.Hour,
		Generated:     generated,
		Consumption:   consumption,
		SelfConsumed:  selfConsumed,
		Stored:        stored,
		Sold:          sold,
		BatteryUsed:   drawn,
		BatteryCharge: batt.Charge,
		GridImport:    unmet,
		Action:        model.ActionFromEnergy(stored, drawn),
	}
}

// Simulate runs the hourly dispatch for one day and computes the economic
// aggregates. Provider series are expected to have gone through
// forecast.Prepare, which also normalises the profile. Inputs are validated before any hour is computed; no partial
// result is ever returned.
func Simulate(cfg model.SystemConfig, series model.HourlySeries, opts ...Option) (*Result, error) {
	o := options{cost: strategy.Reference{}}
	for _, opt := range opts {
		opt(&o)
	}

	if err := series.ValidateShape(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := series.ValidateProfile(); err != nil {
		return nil, err
	}

	d := cfg.Derive()
	hours := make([]model.HourResult, 0, model.Hours)
	charge := cfg.InitialCharge
	for h := 0; h < model.Hours; h++ {
		var res model.HourResult
		charge, res = Step(charge, series.Input(h), d)
		hours = append(hours, res)
	}

	tariffKWh := model.PerKWh(series.TariffPrice)
	spotKWh := model.PerKWh(series.SpotPrice)

	costWithout := 0.0
	for i, hr := range hours {
		costWithout += hr.Consumption * tariffKWh[i]
	}
	costWith := o.cost.GridCost(hours, tariffKWh)

	totals := sumTotals(hours)
	meanSpot := stat.Mean(spotKWh, nil)
	revenue := totals.Sold * meanSpot

	return &Result{
		Date:              series.Date,
		InitialCharge:     cfg.InitialCharge,
		InitialChargeCost: cfg.InitialChargeCost,
		PanelCount:        d.PanelCount,
		TotalPanelArea:    d.TotalPanelArea,
		DailyConsumption:  d.DailyConsumption,
		Hours:             hours,
		Totals:            totals,
		CostWithoutPV:     costWithout,
		CostWithPV:        costWith,
		SaleRevenue:       revenue,
		MeanSpotPriceKWh:  meanSpot,
		TotalSavings:      costWithout - costWith + revenue - cfg.InitialChargeCost,
		FinalCharge:       charge,
		CostMode:          o.cost.Name(),
		TariffKWh:         tariffKWh,
		SpotKWh:           spotKWh,
	}, nil
}

func sumTotals(hours []model.HourResult) Totals {
	var t Totals
	for _, h := range hours {
		t.Generated += h.Generated
		t.Consumption += h.Consumption
		t.SelfConsumed += h.SelfConsumed
		t.Stored += h.Stored
		t.Sold += h.Sold
		t.BatteryUsed += h.BatteryUsed
		t.GridImport += h.GridImport
	}
	return t
}
