package data

import (
	"testing"
	"time"

	"pv-battery-estimator/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	p, cache, err := NewProvider(config.ForecastConfig{Source: "file", Dir: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.Nil(t, cache)
	assert.Equal(t, "file", p.Name())

	p, cache, err = NewProvider(config.ForecastConfig{
		Source:         "http",
		BaseURL:        "http://localhost:1",
		TimeoutSeconds: 1,
		Cache:          config.CacheConfig{Enabled: true, TTL: time.Minute},
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, cache)
	assert.Equal(t, "http+cache", p.Name())

	_, _, err = NewProvider(config.ForecastConfig{Source: "ftp"}, nil)
	assert.Error(t, err)
}
