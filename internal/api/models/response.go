package models

// SimulateResponse is the result of one simulation.
type SimulateResponse struct {
	ID                   string        `json:"id,omitempty"`
	Date                 string        `json:"date"`
	City                 string        `json:"city,omitempty"`
	InitialBatteryCharge float64       `json:"initial_battery_charge"`
	InitialBatteryCost   float64       `json:"initial_battery_cost"`
	TotalSavings         float64       `json:"total_savings"`
	CostMode             string        `json:"cost_mode"`
	Costs                Costs         `json:"costs"`
	Installation         Installation  `json:"installation"`
	Totals               Totals        `json:"totals"`
	KPIs                 KPIs          `json:"kpis"`
	Prices               *PriceSummary `json:"prices,omitempty"`
	Hours                []HourRow     `json:"hours,omitempty"`
}

// Costs breaks total savings down.
type Costs struct {
	WithoutPV        float64 `json:"cost_without_pv"`
	WithPV           float64 `json:"cost_with_pv"`
	SaleRevenue      float64 `json:"sale_revenue"`
	MeanSpotPriceKWh float64 `json:"mean_spot_price_kwh"`
}

// Installation echoes the derived installation figures.
type Installation struct {
	PanelCount       float64 `json:"panel_count"`
	TotalPanelArea   float64 `json:"total_panel_area"`
	DailyConsumption float64 `json:"daily_consumption"`
	FinalCharge      float64 `json:"final_battery_charge"`
}

// Totals are the daily sums in kWh.
type Totals struct {
	Generated    float64 `json:"generated"`
	Consumption  float64 `json:"consumption"`
	SelfConsumed float64 `json:"self_consumed"`
	Stored       float64 `json:"stored"`
	Sold         float64 `json:"sold"`
	BatteryUsed  float64 `json:"battery_used"`
	GridImport   float64 `json:"grid_import"`
}

type KPIs struct {
	SelfConsumptionRate float64 `json:"self_consumption_rate"`
	SelfSufficiency     float64 `json:"self_sufficiency"`
	BatteryCycles       float64 `json:"battery_cycles"`
}

// PriceSummary describes the day's tariff in currency/kWh.
type PriceSummary struct {
	Mean         float64 `json:"mean"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	P05          float64 `json:"p05"`
	P95          float64 `json:"p95"`
	CheapestHour int     `json:"cheapest_hour"`
	DearestHour  int     `json:"dearest_hour"`
}

// HourRow is one hour of the ledger.
type HourRow struct {
	Hour          int     `json:"hour"`
	Action        string  `json:"action"` // "CHARGING", "DISCHARGING", "IDLE"
	Generated     float64 `json:"generated"`
	Consumption   float64 `json:"consumption"`
	SelfConsumed  float64 `json:"self_consumed"`
	Stored        float64 `json:"stored"`
	Sold          float64 `json:"sold"`
	BatteryUsed   float64 `json:"battery_used"`
	GridImport    float64 `json:"grid_import"`
	BatteryCharge float64 `json:"battery_charge"`
}

// HoursResponse is returned by GET /api/v1/simulate/:id/hours.
type HoursResponse struct {
	ID    string    `json:"id"`
	Date  string    `json:"date"`
	Hours []HourRow `json:"hours"`
}

// CompareResponse lists the variations ranked by total savings.
type CompareResponse struct {
	Date       string             `json:"date"`
	CostMode   string             `json:"cost_mode"`
	Comparison []ComparisonResult `json:"comparison"`
	Failed     []FailedVariation  `json:"failed,omitempty"`
}

type ComparisonResult struct {
	Rank         int     `json:"rank"`
	Name         string  `json:"name"`
	ID           string  `json:"id"`
	TotalSavings float64 `json:"total_savings"`
	Costs        Costs   `json:"costs"`
	Totals       Totals  `json:"totals"`
	KPIs         KPIs    `json:"kpis"`
}

// FailedVariation reports a variation that could not be simulated.
type FailedVariation struct {
	Name  string      `json:"name"`
	Error ErrorDetail `json:"error"`
}

// SystemInfo describes a household preset.
type SystemInfo struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	City               string  `json:"city,omitempty"`
	AreaAvailable      float64 `json:"area_available"`
	PanelSize          float64 `json:"panel_size"`
	BatteryCapacity    float64 `json:"battery_capacity"`
	MonthlyConsumption float64 `json:"monthly_consumption"`
}

type CityInfo struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Province string  `json:"province,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
}

// CostModeInfo describes a grid cost strategy.
type CostModeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
