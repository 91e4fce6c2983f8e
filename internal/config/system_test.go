package config

import (
	"errors"
	"testing"

	"pv-battery-estimator/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const houseYAML = `system:
  name: "Casa Madrid"
  city: madrid
  orientation: 180
  tilt: 35
  area_available: 20
  panel_size: 2
  peak_power: 4
  battery_capacity: 10
  initial_battery_charge: 2
  initial_battery_cost: 0.5
  monthly_consumption: 300
`

func TestLoadSystem(t *testing.T) {
	path := writeFile(t, t.TempDir(), "casa.yaml", houseYAML)
	s, err := LoadSystem(path)
	require.NoError(t, err)
	assert.Equal(t, "Casa Madrid", s.Name)
	assert.Equal(t, "madrid", s.City)

	m := s.ToModel()
	assert.Equal(t, model.SystemConfig{
		AreaAvailable:      20,
		PanelUnitArea:      2,
		PeakPower:          4,
		CapacityMax:        10,
		InitialCharge:      2,
		InitialChargeCost:  0.5,
		MonthlyConsumption: 300,
	}, m)
}

func TestLoadSystem_Invalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", `system:
  area_available: 10
  panel_size: 0
  battery_capacity: 5
  monthly_consumption: 100
`)
	_, err := LoadSystem(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))

	s, err := LoadSystemUnchecked(path)
	require.NoError(t, err)
	assert.Equal(t, 10.0, s.AreaAvailable)
}

func TestMergeSystem(t *testing.T) {
	base := SystemConfig{Name: "base", City: "madrid", AreaAvailable: 20, PanelSize: 2, BatteryCapacity: 10, MonthlyConsumption: 300}
	out := MergeSystem(base, SystemConfig{BatteryCapacity: 5, City: "sevilla"})
	assert.Equal(t, 5.0, out.BatteryCapacity)
	assert.Equal(t, "sevilla", out.City)
	assert.Equal(t, 20.0, out.AreaAvailable)
	assert.Equal(t, "base", out.Name)

	// zero override keeps the base value
	out = MergeSystem(base, SystemConfig{})
	assert.Equal(t, base, out)
}

func TestMergeSystem_NamedFields(t *testing.T) {
	base := SystemConfig{Name: "base", City: "madrid", AreaAvailable: 20, PanelSize: 2, BatteryCapacity: 10, InitialBatteryCharge: 4}
	out := MergeSystem(base, SystemConfig{City: "sevilla"}, "battery_capacity", "initial_battery_charge")
	assert.Zero(t, out.BatteryCapacity)
	assert.Zero(t, out.InitialBatteryCharge)
	// not named, so ignored even though non-zero
	assert.Equal(t, "madrid", out.City)
	assert.Equal(t, 20.0, out.AreaAvailable)
}

func TestListSystems(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_house.yaml", houseYAML)
	writeFile(t, dir, "a_flat.yaml", "system:\n  area_available: 8\n  panel_size: 2\n")
	writeFile(t, dir, "broken.yaml", "system: [")
	writeFile(t, dir, "notes.txt", "ignored")

	presets, skipped, err := ListSystems(dir)
	require.NoError(t, err)
	require.Len(t, presets, 2)
	assert.Equal(t, "a_flat", presets[0].ID)
	assert.Equal(t, "a_flat", presets[0].System.Name)
	assert.Equal(t, "b_house", presets[1].ID)
	assert.Equal(t, "Casa Madrid", presets[1].System.Name)
	assert.Contains(t, skipped, "broken.yaml")

	assert.Equal(t, SystemPath(dir, "b_house"), presets[1].File)
	assert.Equal(t, SystemPath(dir, "../b_house"), presets[1].File)

	_, _, err = ListSystems(dir + "/missing")
	assert.Error(t, err)
}
