package models

// SystemFields describes a household installation in a request. Every field
// is optional when System names a preset: set fields override the preset.
// Without a preset all numeric fields are required.
type SystemFields struct {
	System string `json:"system,omitempty"` // preset id, e.g. "madrid_house"

	City        string   `json:"city,omitempty"`
	Orientation *float64 `json:"orientation,omitempty"` // azimuth, degrees
	Tilt        *float64 `json:"tilt,omitempty"`        // slope, degrees

	AreaAvailable        *float64 `json:"area_available,omitempty"` // m²
	PanelSize            *float64 `json:"panel_size,omitempty"`     // m² per panel
	PeakPower            *float64 `json:"peak_power,omitempty"`
	BatteryCapacity      *float64 `json:"battery_capacity,omitempty"`       // kWh
	InitialBatteryCharge *float64 `json:"initial_battery_charge,omitempty"` // kWh
	InitialBatteryCost   *float64 `json:"initial_battery_cost,omitempty"`
	MonthlyConsumption   *float64 `json:"monthly_consumption,omitempty"` // kWh
}

// SimulateRequest is the body of POST /api/v1/simulate.
type SimulateRequest struct {
	SystemFields
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	CostMode     string `json:"cost_mode,omitempty"`     // "reference" | "hourly"
	IncludeHours *bool  `json:"include_hours,omitempty"` // default: true
}

// WantsHours reports whether the hourly breakdown goes in the response.
func (r SimulateRequest) WantsHours() bool {
	return r.IncludeHours == nil || *r.IncludeHours
}

// CompareRequest is the body of POST /api/v1/simulate/compare.
type CompareRequest struct {
	Date       string       `json:"date" binding:"required"`
	CostMode   string       `json:"cost_mode,omitempty"`
	Base       SystemFields `json:"base"`
	Variations []Variation  `json:"variations" binding:"required,min=1,dive"`
}

// Variation overrides the base system of a comparison.
type Variation struct {
	Name string `json:"name" binding:"required"`
	SystemFields
}

// LegacyCalculateRequest is the body accepted by POST /calcular, kept for
// clients of the first version of the service. Every field is required; an
// explicit 0 is accepted.
type LegacyCalculateRequest struct {
	City                 string   `json:"ciudad" binding:"required"`
	Date                 string   `json:"fecha_estimacion" binding:"required"`
	Orientation          *float64 `json:"orientacion" binding:"required"`
	Tilt                 *float64 `json:"inclinacion" binding:"required"`
	AreaAvailable        *float64 `json:"area_disponible" binding:"required"`
	PeakPower            *float64 `json:"potencia_pico_panel" binding:"required"`
	BatteryCapacity      *float64 `json:"capacidad_bateria" binding:"required"`
	InitialBatteryCharge *float64 `json:"carga_inicial_bateria" binding:"required"`
	InitialBatteryCost   *float64 `json:"costo_carga_inicial_bateria" binding:"required"`
	MonthlyConsumption   *float64 `json:"consumo_mensual" binding:"required"`
	PanelSize            *float64 `json:"tamano_panel" binding:"required"`
}

// ToSimulateRequest converts the legacy body.
func (r LegacyCalculateRequest) ToSimulateRequest() SimulateRequest {
	return SimulateRequest{
		SystemFields: SystemFields{
			City:                 r.City,
			Orientation:          r.Orientation,
			Tilt:                 r.Tilt,
			AreaAvailable:        r.AreaAvailable,
			PanelSize:            r.PanelSize,
			PeakPower:            r.PeakPower,
			BatteryCapacity:      r.BatteryCapacity,
			InitialBatteryCharge: r.InitialBatteryCharge,
			InitialBatteryCost:   r.InitialBatteryCost,
			MonthlyConsumption:   r.MonthlyConsumption,
		},
		Date: r.Date,
	}
}
