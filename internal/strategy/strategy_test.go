package strategy

import (
	"testing"

	"pv-battery-estimator/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hours(imports ...float64) []model.HourResult {
	out := make([]model.HourResult, len(imports))
	for i, v := range imports {
		out[i] = model.HourResult{Hour: i, GridImport: v}
	}
	return out
}

func TestReference_GridCost(t *testing.T) {
	tariff := []float64{0.1, 0.2, 0.3}
	// only the final hour's leftover counts, priced at every tariff
	assert.InDelta(t, 0.5*0.6, Reference{}.GridCost(hours(1, 1, 0.5), tariff), 1e-12)
	assert.Zero(t, Reference{}.GridCost(hours(1, 1, 0), tariff))
	assert.Zero(t, Reference{}.GridCost(nil, nil))
}

func TestHourly_GridCost(t *testing.T) {
	tariff := []float64{0.1, 0.2, 0.3}
	assert.InDelta(t, 0.1+0.2+0.15, Hourly{}.GridCost(hours(1, 1, 0.5), tariff), 1e-12)
	assert.Zero(t, Hourly{}.GridCost(hours(0, 0, 0), tariff))
}

func TestGridCost_LengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { Hourly{}.GridCost(hours(1), []float64{0.1, 0.2}) })
}

func TestLookup(t *testing.T) {
	s, err := Lookup("")
	require.NoError(t, err)
	assert.Equal(t, Default, s.Name())

	s, err = Lookup(" Hourly ")
	require.NoError(t, err)
	assert.Equal(t, HourlyName, s.Name())

	_, err = Lookup("monthly")
	assert.ErrorIs(t, err, model.ErrInputFormat)

	assert.Equal(t, []string{"hourly", "reference"}, Names())
	assert.Len(t, All(), 2)
}
