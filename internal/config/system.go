package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pv-battery-estimator/internal/model"

	"gopkg.in/yaml.v3"
)

// SystemConfig is a household preset as stored on disk (YAML), e.g.
// examples/systems/*.yaml. Location fields feed the forecast request, the
// rest builds the model.SystemConfig.
type SystemConfig struct {
	Name        string  `yaml:"name"`
	City        string  `yaml:"city"`
	Orientation float64 `yaml:"orientation"`
	Tilt        float64 `yaml:"tilt"`

	AreaAvailable        float64 `yaml:"area_available"`
	PanelSize            float64 `yaml:"panel_size"`
	PeakPower            float64 `yaml:"peak_power"`
	BatteryCapacity      float64 `yaml:"battery_capacity"`
	InitialBatteryCharge float64 `yaml:"initial_battery_charge"`
	InitialBatteryCost   float64 `yaml:"initial_battery_cost"`
	MonthlyConsumption   float64 `yaml:"monthly_consumption"`
}

type systemFileWrapper struct {
	System SystemConfig `yaml:"system"`
}

// LoadSystem reads a preset file and validates the resulting model config.
func LoadSystem(path string) (*SystemConfig, error) {
	s, err := LoadSystemUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := s.ToModel().Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSystemUnchecked reads a preset file without validating it. Useful when
// the preset is a base for request overrides.
func LoadSystemUnchecked(path string) (*SystemConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w systemFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return &w.System, nil
}

// ToModel converts the preset into the simulator's configuration.
func (s SystemConfig) ToModel() model.SystemConfig {
	return model.SystemConfig{
		AreaAvailable:      s.AreaAvailable,
		PanelUnitArea:      s.PanelSize,
		PeakPower:          s.PeakPower,
		CapacityMax:        s.BatteryCapacity,
		InitialCharge:      s.InitialBatteryCharge,
		InitialChargeCost:  s.InitialBatteryCost,
		MonthlyConsumption: s.MonthlyConsumption,
	}
}

// MergeSystem overlays override onto base. With no fields named, non-zero
// override fields are applied, so a zero keeps the base value. Otherwise
// exactly the named fields (yaml keys, e.g. "battery_capacity") are applied,
// zero included.
func MergeSystem(base, override SystemConfig, fields ...string) SystemConfig {
	named := make(map[string]bool, len(fields))
	for _, f := range fields {
		named[f] = true
	}
	apply := func(field string, zero bool) bool {
		if len(fields) > 0 {
			return named[field]
		}
		return !zero
	}

	out := base
	if apply("name", override.Name == "") {
		out.Name = override.Name
	}
	if apply("city", override.City == "") {
		out.City = override.City
	}
	floats := []struct {
		field string
		src   float64
		dst   *float64
	}{
		{"orientation", override.Orientation, &out.Orientation},
		{"tilt", override.Tilt, &out.Tilt},
		{"area_available", override.AreaAvailable, &out.AreaAvailable},
		{"panel_size", override.PanelSize, &out.PanelSize},
		{"peak_power", override.PeakPower, &out.PeakPower},
		{"battery_capacity", override.BatteryCapacity, &out.BatteryCapacity},
		{"initial_battery_charge", override.InitialBatteryCharge, &out.InitialBatteryCharge},
		{"initial_battery_cost", override.InitialBatteryCost, &out.InitialBatteryCost},
		{"monthly_consumption", override.MonthlyConsumption, &out.MonthlyConsumption},
	}
	for _, f := range floats {
		if apply(f.field, f.src == 0) {
			*f.dst = f.src
		}
	}
	return out
}

// SystemPreset is a preset file found in the systems directory.
type SystemPreset struct {
	ID     string
	File   string
	System SystemConfig
}

// SystemPath returns the preset file for id inside dir.
func SystemPath(dir, id string) string {
	return filepath.Join(dir, filepath.Base(id)+".yaml")
}

// ListSystems loads every *.yaml preset in dir. Invalid files are returned in
// skipped with their error rather than failing the listing.
func ListSystems(dir string) (presets []SystemPreset, skipped map[string]error, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	skipped = map[string]error{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		s, err := LoadSystemUnchecked(path)
		if err != nil {
			skipped[e.Name()] = err
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".yaml")
		if s.Name == "" {
			s.Name = id
		}
		presets = append(presets, SystemPreset{ID: id, File: path, System: *s})
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].ID < presets[j].ID })
	return presets, skipped, nil
}
