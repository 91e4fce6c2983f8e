// Package forecast defines the contract of the forecasting collaborator and
// the post-processing the estimator applies to every forecast it receives.
package forecast

import (
	"context"
	"fmt"
	"time"

	"pv-battery-estimator/internal/model"
)

// DateLayout is the accepted format for request dates.
const DateLayout = "2006-01-02"

// Request identifies the day and installation a forecast is produced for.
// Orientation and Tilt only matter to the forecasting models.
type Request struct {
	City        string
	Date        time.Time
	Orientation float64 // azimuth, degrees
	Tilt        float64 // slope, degrees
}

// Key is a stable textual form of the request.
func (r Request) Key() string {
	return fmt.Sprintf("%s:%s:%g:%g", r.City, r.Date.Format(DateLayout), r.Orientation, r.Tilt)
}

// Provider returns the hourly forecasts for one day.
// Implementations must be safe for concurrent use.
type Provider interface {
	Name() string
	Forecast(ctx context.Context, req Request) (*model.HourlySeries, error)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, model.InputFormatError("the estimation date must be in 'YYYY-MM-DD' format")
	}
	return t, nil
}
