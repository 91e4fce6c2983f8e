package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"pv-battery-estimator/internal/forecast"
	"pv-battery-estimator/internal/logger"
	"pv-battery-estimator/internal/model"
)

// ForecastClient fetches day-ahead forecasts from a remote forecasting service
// that serves the trained irradiance, price, tariff and profile models.
type ForecastClient struct {
	BaseURL string
	Client  *http.Client
	log     logger.Logger
}

// NewForecastClient creates a forecasting service client.
// A zero timeout defaults to 30 seconds.
func NewForecastClient(baseURL string, timeout time.Duration, log logger.Logger) *ForecastClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &ForecastClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// ServiceError represents a non-200 answer from the forecasting service.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// forecastResponse is the JSON shape served by the forecasting service.
type forecastResponse struct {
	Date        string    `json:"date"`
	Irradiance  []float64 `json:"irradiance"`
	SpotPrice   []float64 `json:"spot_price"`
	TariffPrice []float64 `json:"tariff_price"`
	Profile     []float64 `json:"profile"`
}

func (c *ForecastClient) Name() string { return "http" }

// Forecast requests GET {BaseURL}/v1/forecast for the given day.
func (c *ForecastClient) Forecast(ctx context.Context, req forecast.Request) (*model.HourlySeries, error) {
	if req.City == "" {
		return nil, model.InputFormatError("city is required")
	}
	u, err := url.Parse(c.BaseURL + "/v1/forecast")
	if err != nil {
		return nil, model.CollaboratorUnavailableError(err, "invalid forecast service URL")
	}
	q := u.Query()
	q.Set("city", req.City)
	q.Set("date", req.Date.Format(forecast.DateLayout))
	q.Set("orientation", strconv.FormatFloat(req.Orientation, 'f', -1, 64))
	q.Set("tilt", strconv.FormatFloat(req.Tilt, 'f', -1, 64))
	u.RawQuery = q.Encode()

	c.log.Debugf("forecast request: GET %s (city=%s, date=%s)", u.Path, req.City, req.Date.Format(forecast.DateLayout))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, model.CollaboratorUnavailableError(err, "could not build forecast request")
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		c.log.Warnf("forecast request failed: %v (duration: %v)", err, duration)
		return nil, model.CollaboratorUnavailableError(err, "could not load the forecast models or data")
	}
	defer resp.Body.Close()

	c.log.Debugf("forecast response: %d (duration: %v, city=%s)", resp.StatusCode, duration, req.City)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, model.CollaboratorUnavailableError(&ServiceError{
			StatusCode: resp.StatusCode,
			Code:       "NOT_FOUND",
			Message:    fmt.Sprintf("no forecast for %s on %s", req.City, req.Date.Format(forecast.DateLayout)),
		}, "could not load the forecast models or data")
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, model.CollaboratorUnavailableError(&ServiceError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded, retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}, "could not load the forecast models or data")
	default:
		return nil, model.CollaboratorUnavailableError(&ServiceError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("forecast service returned status %d: %s", resp.StatusCode, resp.Status),
		}, "could not load the forecast models or data")
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, model.CollaboratorUnavailableError(err, "could not decode the forecast response")
	}

	return &model.HourlySeries{
		Date:        req.Date,
		Irradiance:  body.Irradiance,
		SpotPrice:   body.SpotPrice,
		TariffPrice: body.TariffPrice,
		Profile:     body.Profile,
	}, nil
}
