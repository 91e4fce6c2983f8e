package forecast

import (
	"math"

	"pv-battery-estimator/internal/model"
)

// Prepare post-processes a provider's forecast:
// - all four series must hold 24 aligned finite values
// - irradiance is clamped to >= 0 and forced to zero outside daylight hours
// - the consumption profile is normalised to sum to 1
//
// The input is not modified.
func Prepare(s *model.HourlySeries) (*model.HourlySeries, error) {
	if s == nil {
		return nil, model.ForecastShapeError("no forecast returned")
	}
	if err := s.ValidateShape(); err != nil {
		return nil, err
	}
	if err := s.ValidateProfile(); err != nil {
		return nil, err
	}

	out := &model.HourlySeries{
		Date:        s.Date,
		Irradiance:  make([]float64, model.Hours),
		SpotPrice:   append([]float64(nil), s.SpotPrice...),
		TariffPrice: append([]float64(nil), s.TariffPrice...),
		Profile:     make([]float64, model.Hours),
	}
	for h, v := range s.Irradiance {
		if !model.IsDaylight(h) {
			continue
		}
		out.Irradiance[h] = math.Max(v, 0)
	}

	total := s.ProfileSum()
	for h, w := range s.Profile {
		out.Profile[h] = w / total
	}
	return out, nil
}
