package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"pv-battery-estimator/internal/strategy"
)

// EnvPrefix prefixes environment overrides; "__" separates nested keys,
// e.g. PV_SERVER__PORT=9090 or PV_FORECAST__SOURCE=http.
const EnvPrefix = "PV_"

// Config is the server configuration.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Forecast   ForecastConfig   `json:"forecast"`
	Simulation SimulationConfig `json:"simulation"`
	Logging    LoggingConfig    `json:"logging"`
	Metrics    MetricsConfig    `json:"metrics"`
}

type ServerConfig struct {
	Port        string   `json:"port"`
	Env         string   `json:"env"` // "production" switches gin to release mode
	CORSOrigins []string `json:"cors_origins"`
}

type ForecastConfig struct {
	// Source is "file" (typical-year tables in Dir) or "http" (remote service at BaseURL).
	Source         string      `json:"source"`
	Dir            string      `json:"dir"`
	BaseURL        string      `json:"base_url"`
	TimeoutSeconds int         `json:"timeout_seconds"`
	Cache          CacheConfig `json:"cache"`
}

type CacheConfig struct {
	Enabled bool          `json:"enabled"`
	TTL     time.Duration `json:"ttl"`
}

type SimulationConfig struct {
	CostMode        string `json:"cost_mode"`
	SystemsDir      string `json:"systems_dir"`
	CitiesFile      string `json:"cities_file"`
	ResultStoreSize int    `json:"result_store_size"`
}

type LoggingConfig struct {
	Level string `json:"level"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// Load reads the configuration file at path (YAML or JSON) and applies
// environment overrides. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Forecast.Source == "" {
		c.Forecast.Source = "file"
	}
	if c.Forecast.Dir == "" {
		c.Forecast.Dir = "./data/forecasts"
	}
	if c.Forecast.TimeoutSeconds == 0 {
		c.Forecast.TimeoutSeconds = 30
	}
	if c.Forecast.Cache.TTL == 0 {
		c.Forecast.Cache.TTL = time.Hour
	}
	if c.Simulation.CostMode == "" {
		c.Simulation.CostMode = strategy.Default
	}
	if c.Simulation.SystemsDir == "" {
		c.Simulation.SystemsDir = "./examples/systems"
	}
	if c.Simulation.CitiesFile == "" {
		c.Simulation.CitiesFile = "./data/cities.json"
	}
	if c.Simulation.ResultStoreSize == 0 {
		c.Simulation.ResultStoreSize = 256
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	switch c.Forecast.Source {
	case "file":
		if c.Forecast.Dir == "" {
			return errors.New("forecast.dir is required for the file source")
		}
	case "http":
		if c.Forecast.BaseURL == "" {
			return errors.New("forecast.base_url is required for the http source")
		}
	default:
		return fmt.Errorf("unsupported forecast.source %q", c.Forecast.Source)
	}
	if c.Forecast.TimeoutSeconds < 0 {
		return errors.New("forecast.timeout_seconds must be >= 0")
	}
	if _, err := strategy.Lookup(c.Simulation.CostMode); err != nil {
		return fmt.Errorf("simulation.cost_mode: %w", err)
	}
	if c.Simulation.ResultStoreSize < 0 {
		return errors.New("simulation.result_store_size must be >= 0")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported logging.level %q", c.Logging.Level)
	}
	return nil
}

// ForecastTimeout returns the HTTP forecast timeout.
func (c ForecastConfig) ForecastTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
