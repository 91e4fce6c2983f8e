package model

import "math"

// Fixed physical and accounting constants of the household model.
const (
	Hours             = 24
	PanelEfficiency   = 0.20
	BatteryEfficiency = 0.90
	DaysPerMonth      = 30

	// Irradiance outside [DaylightStartHour, DaylightEndHour] is forced to zero.
	DaylightStartHour = 6
	DaylightEndHour   = 18
)

// SystemConfig describes one household PV + battery installation.
// Units:
// - AreaAvailable, PanelUnitArea: m²
// - PeakPower: kWp per panel (informational, not used by dispatch)
// - CapacityMax, InitialCharge, MonthlyConsumption: kWh
// - InitialChargeCost: currency
type SystemConfig struct {
	AreaAvailable      float64
	PanelUnitArea      float64
	PeakPower          float64
	CapacityMax        float64
	InitialCharge      float64
	InitialChargeCost  float64
	MonthlyConsumption float64
}

// Derived holds the scalars computed once per simulation from a SystemConfig.
type Derived struct {
	PanelCount        float64
	TotalPanelArea    float64
	DailyConsumption  float64
	CapacityMax       float64
	PanelEfficiency   float64
	BatteryEfficiency float64
}

// Validate checks the configuration before any hour is simulated.
func (c SystemConfig) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"area_available", c.AreaAvailable},
		{"panel_size", c.PanelUnitArea},
		{"peak_power", c.PeakPower},
		{"battery_capacity", c.CapacityMax},
		{"initial_battery_charge", c.InitialCharge},
		{"initial_battery_cost", c.InitialChargeCost},
		{"monthly_consumption", c.MonthlyConsumption},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return InputFormatError("%s must be a finite number", f.name)
		}
	}
	if c.PanelUnitArea <= 0 {
		return ValidationError("panel size must be > 0")
	}
	if c.AreaAvailable < 0 {
		return ValidationError("available area cannot be negative")
	}
	if c.CapacityMax < 0 {
		return ValidationError("battery capacity cannot be negative")
	}
	if c.MonthlyConsumption < 0 {
		return ValidationError("monthly consumption cannot be negative")
	}
	if c.InitialCharge > c.CapacityMax {
		return ValidationError("initial battery charge cannot exceed its maximum capacity")
	}
	if c.InitialCharge < 0 {
		return ValidationError("initial battery charge cannot be negative")
	}
	return nil
}

// Derive computes the per-run scalars. The panel area is recomputed from the
// panel count rather than taken from AreaAvailable.
func (c SystemConfig) Derive() Derived {
	count := c.AreaAvailable / c.PanelUnitArea
	return Derived{
		PanelCount:        count,
		TotalPanelArea:    count * c.PanelUnitArea,
		DailyConsumption:  c.MonthlyConsumption / DaysPerMonth,
		CapacityMax:       c.CapacityMax,
		PanelEfficiency:   PanelEfficiency,
		BatteryEfficiency: BatteryEfficiency,
	}
}
