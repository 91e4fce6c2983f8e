package data

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"pv-battery-estimator/internal/forecast"
	"pv-battery-estimator/internal/model"
)

// TypicalRow is one hour of a typical year: averages of the historical
// series for a day-of-year and hour, optionally per panel slope/azimuth.
type TypicalRow struct {
	Day         int     `json:"day"`
	Hour        int     `json:"hour"`
	Slope       float64 `json:"slope"`
	Azimuth     float64 `json:"azimuth"`
	Irradiance  float64 `json:"irradiance"`
	SpotPrice   float64 `json:"spot_price"`
	TariffPrice float64 `json:"tariff_price"`
	Profile     float64 `json:"profile"`
}

// TypicalYear is the JSON file shape; CSV files carry the same columns.
type TypicalYear struct {
	City string       `json:"city"`
	Rows []TypicalRow `json:"rows"`
}

type orientation struct {
	slope, azimuth float64
}

// typicalTable indexes a typical year by orientation, then day and hour.
type typicalTable map[orientation]map[int]map[int]TypicalRow

// FileProvider serves forecasts from typical-year tables stored as
// <Dir>/<city>.csv or <Dir>/<city>.json. Tables are loaded once per city.
type FileProvider struct {
	Dir string

	mu     sync.Mutex
	tables map[string]typicalTable
}

// NewFileProvider creates a provider reading typical-year tables from dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{Dir: dir, tables: map[string]typicalTable{}}
}

func (p *FileProvider) Name() string { return "file" }

// Forecast returns the typical-year hours for the request's day-of-year and
// the orientation closest to the requested one. Hours missing from the table
// are left out, which the shape check downstream rejects.
func (p *FileProvider) Forecast(ctx context.Context, req forecast.Request) (*model.HourlySeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.CollaboratorUnavailableError(err, "forecast cancelled")
	}
	if strings.TrimSpace(req.City) == "" {
		return nil, model.InputFormatError("city is required")
	}
	table, err := p.table(req.City)
	if err != nil {
		return nil, model.CollaboratorUnavailableError(err, "could not load the forecast models or data")
	}

	days := table[nearestOrientation(table, req.Tilt, req.Orientation)]
	hours := days[TypicalDay(req.Date)]

	s := &model.HourlySeries{Date: req.Date}
	for h := 0; h < model.Hours; h++ {
		row, ok := hours[h]
		if !ok {
			continue
		}
		s.Irradiance = append(s.Irradiance, row.Irradiance)
		s.SpotPrice = append(s.SpotPrice, row.SpotPrice)
		s.TariffPrice = append(s.TariffPrice, row.TariffPrice)
		s.Profile = append(s.Profile, row.Profile)
	}
	return s, nil
}

func (p *FileProvider) table(city string) (typicalTable, error) {
	name := CitySlug(city)

	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.tables[name]; ok {
		return t, nil
	}

	rows, err := LoadTypicalYear(p.Dir, name)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("typical year for %q has no rows", city)
	}
	t := typicalTable{}
	for _, r := range rows {
		o := orientation{slope: r.Slope, azimuth: r.Azimuth}
		if t[o] == nil {
			t[o] = map[int]map[int]TypicalRow{}
		}
		if t[o][r.Day] == nil {
			t[o][r.Day] = map[int]TypicalRow{}
		}
		t[o][r.Day][r.Hour] = r
	}
	p.tables[name] = t
	return t, nil
}

// LoadTypicalYear reads <dir>/<name>.csv, falling back to <dir>/<name>.json.
func LoadTypicalYear(dir, name string) ([]TypicalRow, error) {
	csvPath := filepath.Join(dir, name+".csv")
	f, err := os.Open(csvPath)
	if err == nil {
		defer f.Close()
		return ParseTypicalCSV(f)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	raw, err := os.ReadFile(filepath.Join(dir, name+".json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no typical-year data for %q in %s", name, dir)
		}
		return nil, err
	}
	var ty TypicalYear
	if err := json.Unmarshal(raw, &ty); err != nil {
		return nil, fmt.Errorf("failed to parse typical year %s: %w", name, err)
	}
	return ty.Rows, nil
}

var requiredColumns = []string{"day", "hour", "irradiance", "spot_price", "tariff_price", "profile"}

// ParseTypicalCSV parses a typical-year CSV with a header row. The columns
// day, hour, irradiance, spot_price, tariff_price and profile are required;
// slope and azimuth are optional.
func ParseTypicalCSV(r io.Reader) ([]TypicalRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "#")))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}

	var rows []TypicalRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		num := func(col string) (float64, error) {
			i, ok := cols[col]
			if !ok || i >= len(rec) || strings.TrimSpace(rec[i]) == "" {
				return 0, nil
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				return 0, fmt.Errorf("line %d: column %s: %w", line, col, err)
			}
			return v, nil
		}

		var vals [8]float64
		for i, col := range []string{"day", "hour", "slope", "azimuth", "irradiance", "spot_price", "tariff_price", "profile"} {
			if vals[i], err = num(col); err != nil {
				return nil, err
			}
		}
		rows = append(rows, TypicalRow{
			Day:         int(vals[0]),
			Hour:        int(vals[1]),
			Slope:       vals[2],
			Azimuth:     vals[3],
			Irradiance:  vals[4],
			SpotPrice:   vals[5],
			TariffPrice: vals[6],
			Profile:     vals[7],
		})
	}
	return rows, nil
}

// TypicalDay maps a date to its typical-year day (1..365). In leap years
// Feb 29 folds onto Feb 28 and later days shift back by one.
func TypicalDay(t time.Time) int {
	d := t.YearDay()
	if isLeap(t.Year()) && d >= 60 {
		d--
	}
	return d
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func nearestOrientation(t typicalTable, tilt, azimuth float64) orientation {
	var best orientation
	bestDist := math.Inf(1)
	for o := range t {
		ds := o.slope - tilt
		da := angleDiff(o.azimuth, azimuth)
		dist := ds*ds + da*da
		if dist < bestDist || (dist == bestDist && less(o, best)) {
			best, bestDist = o, dist
		}
	}
	return best
}

func less(a, b orientation) bool {
	if a.slope != b.slope {
		return a.slope < b.slope
	}
	return a.azimuth < b.azimuth
}

// angleDiff returns the smallest absolute difference between two angles in degrees.
func angleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
