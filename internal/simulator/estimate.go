package simulator

import (
	"context"

	"pv-battery-estimator/internal/forecast"
	"pv-battery-estimator/internal/model"
)

// Estimate fetches the forecast for req from p, prepares it and simulates
// the day for cfg. Provider failures that carry no error kind are reported
// as ErrCollaboratorUnavailable.
func Estimate(ctx context.Context, p forecast.Provider, req forecast.Request, cfg model.SystemConfig, opts ...Option) (*Result, error) {
	series, err := p.Forecast(ctx, req)
	if err != nil {
		if model.KindOf(err) == nil {
			err = model.CollaboratorUnavailableError(err, "could not produce forecasts for %s", req.Date.Format(forecast.DateLayout))
		}
		return nil, err
	}
	prepared, err := forecast.Prepare(series)
	if err != nil {
		return nil, err
	}
	if prepared.Date.IsZero() {
		prepared.Date = req.Date
	}
	return Simulate(cfg, *prepared, opts...)
}
