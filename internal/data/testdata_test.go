package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTypicalCSV writes a one-day typical year (day 172) for two orientations.
func writeTypicalCSV(t *testing.T, dir, name string, hours int) {
	t.Helper()
	var b strings.Builder
	b.WriteString("day,hour,slope,azimuth,irradiance,spot_price,tariff_price,profile\n")
	for _, o := range []struct{ slope, azimuth, scale float64 }{{35, 0, 1}, {10, 90, 0.5}} {
		for h := 0; h < hours; h++ {
			fmt.Fprintf(&b, "172,%d,%g,%g,%g,%g,%g,%g\n", h, o.slope, o.azimuth, o.scale*float64(h*10), 50+float64(h), 120.0, 1.0)
		}
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".csv"), []byte(b.String()), 0o644))
}
