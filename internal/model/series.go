package model

import (
	"math"
	"time"
)

// HourlySeries is one day of forecasts, one value per hour 0..23.
// Prices are in currency/MWh as produced by the forecast models.
type HourlySeries struct {
	Date        time.Time `json:"date"`
	Irradiance  []float64 `json:"irradiance"`   // W/m²
	SpotPrice   []float64 `json:"spot_price"`   // currency/MWh
	TariffPrice []float64 `json:"tariff_price"` // currency/MWh
	Profile     []float64 `json:"profile"`      // consumption share, sums to 1
}

// HourInput is the slice of the series seen by a single dispatch step.
type HourInput struct {
	Hour          int
	Irradiance    float64 // W/m²
	ProfileWeight float64
}

// ProfileSumEpsilon is the magnitude below which a profile sum counts as zero.
const ProfileSumEpsilon = 1e-12

// ValidateShape checks that all four series hold exactly Hours finite values.
func (s HourlySeries) ValidateShape() error {
	series := []struct {
		name string
		vals []float64
	}{
		{"irradiance", s.Irradiance},
		{"spot_price", s.SpotPrice},
		{"tariff_price", s.TariffPrice},
		{"profile", s.Profile},
	}
	for _, ser := range series {
		if len(ser.vals) != Hours {
			return ForecastShapeError("the data for %s does not have %d hourly values (%s has %d)",
				s.Date.Format("2006-01-02"), Hours, ser.name, len(ser.vals))
		}
		for h, v := range ser.vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return ForecastShapeError("%s value at hour %d is not finite", ser.name, h)
			}
		}
	}
	return nil
}

// ProfileSum returns the sum of the consumption profile weights.
func (s HourlySeries) ProfileSum() float64 {
	sum := 0.0
	for _, w := range s.Profile {
		sum += w
	}
	return sum
}

// ValidateProfile rejects a profile whose weights sum to (numerically) zero.
func (s HourlySeries) ValidateProfile() error {
	if math.Abs(s.ProfileSum()) < ProfileSumEpsilon {
		return ValidationError("the hourly consumption profile sums to zero and cannot be normalized")
	}
	return nil
}

// Input returns the dispatch inputs for hour h.
func (s HourlySeries) Input(h int) HourInput {
	return HourInput{
		Hour:          h,
		Irradiance:    s.Irradiance[h],
		ProfileWeight: s.Profile[h],
	}
}

// PerKWh converts currency/MWh prices to currency/kWh.
func PerKWh(perMWh []float64) []float64 {
	out := make([]float64, len(perMWh))
	for i, p := range perMWh {
		out[i] = p / 1000
	}
	return out
}

// IsDaylight reports whether irradiance is kept for the given hour.
func IsDaylight(hour int) bool {
	return hour >= DaylightStartHour && hour <= DaylightEndHour
}

// HourResult captures what happened in one hour. All energies are kWh.
type HourResult struct {
	Hour          int
	Generated     float64
	Consumption   float64
	SelfConsumed  float64
	Stored        float64 // post-efficiency energy added to the battery
	Sold          float64
	BatteryUsed   float64 // energy delivered by the battery to the household
	BatteryCharge float64 // charge after the hour
	GridImport    float64 // demand left unmet after PV and battery
	Action        Action
}
