package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCitySlug(t *testing.T) {
	assert.Equal(t, "a_coruna", CitySlug("A Coruña"))
	assert.Equal(t, "malaga", CitySlug(" Málaga "))
	assert.Equal(t, "las_palmas_de_gran_canaria", CitySlug("Las Palmas de Gran Canaria"))
	assert.Equal(t, "vitoria_gasteiz", CitySlug("Vitoria-Gasteiz"))
}

func TestCities_SaveLoadScan(t *testing.T) {
	dir := t.TempDir()
	writeTypicalCSV(t, dir, "madrid", 24)
	writeTypicalCSV(t, dir, "a_coruna", 24)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	cities, err := ScanCities(dir)
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "a_coruna", cities[0].ID)
	assert.Equal(t, "A Coruna", cities[0].Name)

	path := filepath.Join(dir, "out", "cities.json")
	require.NoError(t, SaveCities(&CityList{UpdatedAt: "2024-01-01T00:00:00Z", Cities: append(cities, City{Name: "San Sebastián"})}, path))

	list, err := LoadCities(path)
	require.NoError(t, err)
	require.Len(t, list.Cities, 3)
	assert.Equal(t, "san_sebastian", list.Cities[2].ID)
}

func TestMergeCities(t *testing.T) {
	seed := []City{
		{ID: "madrid", Name: "Madrid", Province: "Madrid", Lat: 40.4, Lon: -3.7},
		{ID: "bilbao", Name: "Bilbao"},
	}
	scanned := []City{{ID: "a_coruna", Name: "A Coruna"}, {ID: "madrid", Name: "Madrid"}}

	out := MergeCities(seed, scanned)
	require.Len(t, out, 2)
	assert.Equal(t, "A Coruna", out[0].Name)
	assert.Equal(t, "Madrid", out[1].Province)
	assert.Equal(t, 40.4, out[1].Lat)
}
