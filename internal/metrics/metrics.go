// Package metrics exposes Prometheus collectors for simulations, forecast
// lookups and HTTP traffic.
package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder records estimator activity in Prometheus metrics.
type Recorder struct {
	simulations *prometheus.CounterVec
	savings     prometheus.Histogram
	forecasts   *prometheus.CounterVec
	requests    *prometheus.CounterVec
}

// New registers the collectors on the default Prometheus registerer.
func New() (*Recorder, error) {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors on reg. A nil registerer defaults
// to the global one. Collectors already registered are reused.
func NewWithRegistry(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	simulations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pv_simulations_total",
		Help: "Simulations run, by outcome",
	}, []string{"outcome"})
	savings := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pv_simulation_savings",
		Help:    "Total daily savings of successful simulations (currency)",
		Buckets: []float64{-5, -1, -0.5, 0, 0.5, 1, 2, 5, 10},
	})
	forecasts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pv_forecast_requests_total",
		Help: "Forecast lookups, by provider and outcome",
	}, []string{"source", "outcome"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pv_http_requests_total",
		Help: "HTTP requests handled, by method, route and status",
	}, []string{"method", "route", "status"})

	var err error
	if simulations, err = register(reg, simulations); err != nil {
		return nil, err
	}
	if savings, err = register(reg, savings); err != nil {
		return nil, err
	}
	if forecasts, err = register(reg, forecasts); err != nil {
		return nil, err
	}
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	return &Recorder{simulations: simulations, savings: savings, forecasts: forecasts, requests: requests}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveSimulation counts a simulation and, when it succeeded, its savings.
func (r *Recorder) ObserveSimulation(savings float64, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.simulations.WithLabelValues(OutcomeError).Inc()
		return
	}
	r.simulations.WithLabelValues(OutcomeOK).Inc()
	r.savings.Observe(savings)
}

// ObserveForecast counts a forecast lookup against source.
func (r *Recorder) ObserveForecast(source string, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	r.forecasts.WithLabelValues(source, outcome).Inc()
}

// ObserveRequest counts a handled HTTP request.
func (r *Recorder) ObserveRequest(method, route string, status int) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
