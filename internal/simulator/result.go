package simulator

import (
	"time"

	"pv-battery-estimator/internal/model"
)

// Totals sums each hourly energy series over the day (kWh).
type Totals struct {
	Generated    float64
	Consumption  float64
	SelfConsumed float64
	Stored       float64
	Sold         float64
	BatteryUsed  float64
	GridImport   float64
}

// Result is the terminal output of one simulation call.
type Result struct {
	Date              time.Time
	InitialCharge     float64
	InitialChargeCost float64

	PanelCount       float64
	TotalPanelArea   float64
	DailyConsumption float64

	Hours  []model.HourResult
	Totals Totals

	CostWithoutPV    float64 // currency, all consumption bought at the tariff
	CostWithPV       float64 // currency, per the selected cost strategy
	SaleRevenue      float64 // currency, sold energy at the mean spot price
	MeanSpotPriceKWh float64
	TotalSavings     float64

	FinalCharge float64
	CostMode    string

	// Prices of the day in currency/kWh, aligned with Hours.
	TariffKWh []float64
	SpotKWh   []float64
}
