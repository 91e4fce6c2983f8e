package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// City is a location with typical-year forecast data.
type City struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Province string  `json:"province,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
}

// CityList is the on-disk city catalogue.
type CityList struct {
	UpdatedAt string `json:"updated_at"` // ISO 8601 timestamp
	Cities    []City `json:"cities"`
}

// LoadCities loads the catalogue from a JSON file.
func LoadCities(filePath string) (*CityList, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cities file: %w", err)
	}

	var list CityList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse cities file: %w", err)
	}
	for i := range list.Cities {
		if list.Cities[i].ID == "" {
			list.Cities[i].ID = CitySlug(list.Cities[i].Name)
		}
	}
	return &list, nil
}

// SaveCities writes the catalogue to a JSON file.
func SaveCities(list *CityList, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cities: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write cities file: %w", err)
	}
	return nil
}

// ScanCities lists the cities that have a typical-year file in dir.
// Names are recovered from the file names.
func ScanCities(dir string) ([]City, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []City
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".csv" && ext != ".json" {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ext)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, City{ID: id, Name: displayName(id)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CitySlug turns a city name into its file name: accents stripped, lower
// case, spaces replaced by underscores ("A Coruña" -> "a_coruna").
func CitySlug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.TrimSpace(name))
	if err != nil {
		s = strings.TrimSpace(name)
	}
	s = strings.ToLower(s)
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '/' || r == '.'
	}), "_")
}

func displayName(id string) string {
	parts := strings.Split(id, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// MergeCities keeps the cities found on disk, taking names and coordinates
// from seed where a seed entry has the same ID.
func MergeCities(seed, scanned []City) []City {
	byID := make(map[string]City, len(seed))
	for _, c := range seed {
		byID[c.ID] = c
	}
	out := make([]City, 0, len(scanned))
	for _, c := range scanned {
		if s, ok := byID[c.ID]; ok {
			c = s
		}
		out = append(out, c)
	}
	return out
}
