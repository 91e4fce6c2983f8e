package data

import (
	"fmt"

	"pv-battery-estimator/internal/config"
	"pv-battery-estimator/internal/forecast"
	"pv-battery-estimator/internal/logger"
)

// NewProvider builds the forecast provider described by cfg. When caching is
// enabled the returned Cache is the provider; callers should run its purge
// loop.
func NewProvider(cfg config.ForecastConfig, log logger.Logger) (forecast.Provider, *Cache, error) {
	if log == nil {
		log = logger.NopLogger{}
	}
	var p forecast.Provider
	switch cfg.Source {
	case "", "file":
		p = NewFileProvider(cfg.Dir)
		log.Infof("forecasts from typical-year files in %s", cfg.Dir)
	case "http":
		p = NewForecastClient(cfg.BaseURL, cfg.ForecastTimeout(), log)
		log.Infof("forecasts from %s", cfg.BaseURL)
	default:
		return nil, nil, fmt.Errorf("unsupported forecast source %q", cfg.Source)
	}
	if !cfg.Cache.Enabled {
		return p, nil, nil
	}
	c := NewCache(p, cfg.Cache.TTL)
	return c, c, nil
}
