package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"pv-battery-estimator/internal/api/models"
	"pv-battery-estimator/internal/forecast"
	"pv-battery-estimator/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProvider struct {
	irradiance float64
	hours      int
	err        error
	calls      []forecast.Request
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Forecast(_ context.Context, req forecast.Request) (*model.HourlySeries, error) {
	p.calls = append(p.calls, req)
	if p.err != nil {
		return nil, p.err
	}
	n := p.hours
	if n == 0 {
		n = model.Hours
	}
	s := &model.HourlySeries{Date: req.Date}
	for h := 0; h < n; h++ {
		s.Irradiance = append(s.Irradiance, p.irradiance)
		s.SpotPrice = append(s.SpotPrice, 50)
		s.TariffPrice = append(s.TariffPrice, 100)
		s.Profile = append(s.Profile, 1)
	}
	return s, nil
}

const presetYAML = `system:
  name: "Test house"
  city: madrid
  orientation: 180
  tilt: 30
  area_available: 10
  panel_size: 1
  peak_power: 0.4
  battery_capacity: 5
  initial_battery_charge: 0
  initial_battery_cost: 0
  monthly_consumption: 72
`

func newRouter(t *testing.T, p forecast.Provider) (*gin.Engine, *ResultStore) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "house.yaml"), []byte(presetYAML), 0o644))

	store := NewResultStore(8)
	h := NewSimulateHandler(p, store, SimulateOptions{SystemsDir: dir, DefaultCostMode: "reference"})

	r := gin.New()
	r.POST("/calcular", h.Calculate)
	api := r.Group("/api/v1")
	api.POST("/simulate", h.Simulate)
	api.GET("/simulate/:id/hours", h.GetHours)
	api.POST("/simulate/compare", h.Compare)
	api.GET("/systems", NewSystemsHandler(dir, nil).ListSystems)
	api.GET("/cost-modes", NewCostModesHandler("hourly").ListCostModes)
	return r, store
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func validBody() map[string]any {
	return map[string]any{
		"city":                   "madrid",
		"date":                   "2024-06-21",
		"orientation":            180,
		"tilt":                   30,
		"area_available":         10,
		"panel_size":             1,
		"peak_power":             0.4,
		"battery_capacity":       5,
		"initial_battery_charge": 0,
		"initial_battery_cost":   0,
		"monthly_consumption":    72,
	}
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorDetail {
	t.Helper()
	var out models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out.Error
}

func TestSimulate_OK(t *testing.T) {
	p := &fakeProvider{irradiance: 1000}
	r, store := newRouter(t, p)

	rr := do(t, r, http.MethodPost, "/api/v1/simulate", validBody())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "2024-06-21", resp.Date)
	assert.Equal(t, "reference", resp.CostMode)
	require.Len(t, resp.Hours, model.Hours)
	assert.Equal(t, 0.0, resp.Hours[3].Generated)
	assert.InDelta(t, 2.0, resp.Hours[12].Generated, 1e-9)
	assert.InDelta(t, 2.4, resp.Totals.Consumption, 1e-9)
	assert.InDelta(t, 5.0, resp.Totals.Stored, 1e-9)
	assert.Equal(t, "CHARGING", resp.Hours[6].Action)
	assert.Equal(t, "DISCHARGING", resp.Hours[20].Action)
	require.NotNil(t, resp.Prices)
	assert.InDelta(t, 0.1, resp.Prices.Mean, 1e-12)
	assert.Equal(t, 1, store.Len())

	require.Len(t, p.calls, 1)
	assert.Equal(t, "madrid", p.calls[0].City)
	assert.Equal(t, 180.0, p.calls[0].Orientation)

	rr = do(t, r, http.MethodGet, "/api/v1/simulate/"+resp.ID+"/hours", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var hours models.HoursResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &hours))
	assert.Equal(t, resp.Hours, hours.Hours)
}

func TestSimulate_OmitHours(t *testing.T) {
	r, _ := newRouter(t, &fakeProvider{irradiance: 800})
	body := validBody()
	body["include_hours"] = false
	body["cost_mode"] = "hourly"

	rr := do(t, r, http.MethodPost, "/api/v1/simulate", body)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.Hours)
	assert.Equal(t, "hourly", resp.CostMode)
}

func TestSimulate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		mutate   func(map[string]any)
		status   int
		code     string
		message  string
	}{
		{
			name:     "bad date",
			provider: &fakeProvider{irradiance: 500},
			mutate:   func(b map[string]any) { b["date"] = "21/06/2024" },
			status:   http.StatusBadRequest,
			code:     CodeInvalidInput,
			message:  "the estimation date must be in 'YYYY-MM-DD' format",
		},
		{
			name:     "missing field",
			provider: &fakeProvider{irradiance: 500},
			mutate:   func(b map[string]any) { delete(b, "battery_capacity") },
			status:   http.StatusBadRequest,
			code:     CodeInvalidInput,
			message:  "battery_capacity is required when no system preset is given",
		},
		{
			name:     "unknown cost mode",
			provider: &fakeProvider{irradiance: 500},
			mutate:   func(b map[string]any) { b["cost_mode"] = "monthly" },
			status:   http.StatusBadRequest,
			code:     CodeInvalidInput,
		},
		{
			name:     "unknown preset",
			provider: &fakeProvider{irradiance: 500},
			mutate:   func(b map[string]any) { b["system"] = "castle" },
			status:   http.StatusBadRequest,
			code:     CodeInvalidInput,
		},
		{
			name:     "forecast unavailable",
			provider: &fakeProvider{err: errors.New("no model for madrid")},
			mutate:   func(map[string]any) {},
			status:   http.StatusServiceUnavailable,
			code:     CodeForecastUnavailable,
		},
		{
			name:     "short forecast",
			provider: &fakeProvider{irradiance: 500, hours: 23},
			mutate:   func(map[string]any) {},
			status:   http.StatusUnprocessableEntity,
			code:     CodeForecastShape,
		},
		{
			name:     "charge above capacity",
			provider: &fakeProvider{irradiance: 500},
			mutate:   func(b map[string]any) { b["initial_battery_charge"] = 6 },
			status:   http.StatusUnprocessableEntity,
			code:     CodeValidationFailed,
		},
		{
			name:     "negative charge",
			provider: &fakeProvider{irradiance: 500},
			mutate:   func(b map[string]any) { b["initial_battery_charge"] = -1 },
			status:   http.StatusUnprocessableEntity,
			code:     CodeValidationFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store := newRouter(t, tt.provider)
			body := validBody()
			tt.mutate(body)
			rr := do(t, r, http.MethodPost, "/api/v1/simulate", body)
			require.Equal(t, tt.status, rr.Code, rr.Body.String())
			detail := decodeError(t, rr)
			assert.Equal(t, tt.code, detail.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, detail.Message)
			}
			assert.Zero(t, store.Len())
		})
	}
}

func TestSimulate_ForecastUnavailableCarriesCause(t *testing.T) {
	r, _ := newRouter(t, &fakeProvider{err: errors.New("no model for madrid")})
	rr := do(t, r, http.MethodPost, "/api/v1/simulate", validBody())
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "no model for madrid", decodeError(t, rr).Details["cause"])
}

func TestSimulate_Preset(t *testing.T) {
	p := &fakeProvider{irradiance: 1000}
	r, _ := newRouter(t, p)

	rr := do(t, r, http.MethodPost, "/api/v1/simulate", map[string]any{
		"date":             "2024-06-21",
		"system":           "house",
		"battery_capacity": 0,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "madrid", resp.City)
	assert.Zero(t, resp.Totals.Stored)
	assert.Zero(t, resp.Installation.FinalCharge)
	assert.InDelta(t, 10, resp.Installation.PanelCount, 1e-12)
}

func TestCalculate_Legacy(t *testing.T) {
	r, _ := newRouter(t, &fakeProvider{irradiance: 1000})
	rr := do(t, r, http.MethodPost, "/calcular", map[string]any{
		"ciudad":                      "madrid",
		"fecha_estimacion":            "2024-06-21",
		"orientacion":                 180,
		"inclinacion":                 30,
		"area_disponible":             10,
		"potencia_pico_panel":         0.4,
		"capacidad_bateria":           5,
		"carga_inicial_bateria":       1,
		"costo_carga_inicial_bateria": 0.2,
		"consumo_mensual":             72,
		"tamano_panel":                1,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1.0, resp.InitialBatteryCharge)
	assert.Equal(t, 0.2, resp.InitialBatteryCost)
	assert.Len(t, resp.Hours, model.Hours)
}

func legacyBody() map[string]any {
	return map[string]any{
		"ciudad":                      "madrid",
		"fecha_estimacion":            "2024-06-21",
		"orientacion":                 180,
		"inclinacion":                 30,
		"area_disponible":             10,
		"potencia_pico_panel":         0.4,
		"capacidad_bateria":           5,
		"carga_inicial_bateria":       1,
		"costo_carga_inicial_bateria": 0.2,
		"consumo_mensual":             72,
		"tamano_panel":                1,
	}
}

func TestCalculate_LegacyMissingField(t *testing.T) {
	r, _ := newRouter(t, &fakeProvider{irradiance: 1000})
	for _, field := range []string{
		"ciudad",
		"orientacion",
		"inclinacion",
		"potencia_pico_panel",
		"capacidad_bateria",
		"carga_inicial_bateria",
		"costo_carga_inicial_bateria",
	} {
		t.Run(field, func(t *testing.T) {
			body := legacyBody()
			delete(body, field)
			rr := do(t, r, http.MethodPost, "/calcular", body)
			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			assert.Equal(t, CodeInvalidInput, decodeError(t, rr).Code)
		})
	}
}

func TestCalculate_LegacyExplicitZero(t *testing.T) {
	r, _ := newRouter(t, &fakeProvider{irradiance: 1000})
	body := legacyBody()
	body["capacidad_bateria"] = 0
	body["carga_inicial_bateria"] = 0
	rr := do(t, r, http.MethodPost, "/calcular", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Zero(t, resp.Totals.Stored)
}

func TestGetHours_NotFound(t *testing.T) {
	r, _ := newRouter(t, &fakeProvider{})
	rr := do(t, r, http.MethodGet, "/api/v1/simulate/missing/hours", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, CodeNotFound, decodeError(t, rr).Code)
}

func TestCompare(t *testing.T) {
	r, _ := newRouter(t, &fakeProvider{irradiance: 1000})
	rr := do(t, r, http.MethodPost, "/api/v1/simulate/compare", map[string]any{
		"date": "2024-06-21",
		"base": map[string]any{"system": "house"},
		"variations": []map[string]any{
			{"name": "no_battery", "battery_capacity": 0},
			{"name": "5kwh"},
			{"name": "10kwh", "battery_capacity": 10},
			{"name": "broken", "initial_battery_charge": 50},
		},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "reference", resp.CostMode)
	require.Len(t, resp.Comparison, 3)
	for i, c := range resp.Comparison {
		assert.Equal(t, i+1, c.Rank)
		assert.NotEmpty(t, c.ID)
		if i > 0 {
			assert.GreaterOrEqual(t, resp.Comparison[i-1].TotalSavings, c.TotalSavings)
		}
	}
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, "broken", resp.Failed[0].Name)
	assert.Equal(t, CodeValidationFailed, resp.Failed[0].Error.Code)
}

func TestCompare_InvalidRequest(t *testing.T) {
	r, _ := newRouter(t, &fakeProvider{irradiance: 1000})
	rr := do(t, r, http.MethodPost, "/api/v1/simulate/compare", map[string]any{"date": "2024-06-21"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, CodeInvalidInput, decodeError(t, rr).Code)
}

func TestListSystems(t *testing.T) {
	r, _ := newRouter(t, &fakeProvider{})
	rr := do(t, r, http.MethodGet, "/api/v1/systems", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var out struct {
		Systems []models.SystemInfo `json:"systems"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out.Systems, 1)
	assert.Equal(t, "house", out.Systems[0].ID)
	assert.Equal(t, "Test house", out.Systems[0].Name)
	assert.Equal(t, 5.0, out.Systems[0].BatteryCapacity)
}

func TestListSystems_MissingDir(t *testing.T) {
	r := gin.New()
	r.GET("/systems", NewSystemsHandler(filepath.Join(t.TempDir(), "nope"), nil).ListSystems)
	rr := do(t, r, http.MethodGet, "/systems", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"systems":[]}`, rr.Body.String())
}

func TestListCostModes(t *testing.T) {
	r, _ := newRouter(t, &fakeProvider{})
	rr := do(t, r, http.MethodGet, "/api/v1/cost-modes", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var out struct {
		CostModes []models.CostModeInfo `json:"cost_modes"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out.CostModes, 2)
	assert.Equal(t, "hourly", out.CostModes[0].Name)
	assert.True(t, out.CostModes[0].Default)
	assert.Equal(t, "reference", out.CostModes[1].Name)
	assert.False(t, out.CostModes[1].Default)
}

func TestListCities(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cities.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"updated_at":"2024-01-01T00:00:00Z","cities":[{"name":"Madrid","province":"Madrid"},{"id":"sevilla","name":"Sevilla"}]}`), 0o644))

	r := gin.New()
	r.GET("/cities", NewCitiesHandler(file, nil).ListCities)
	r.GET("/missing", NewCitiesHandler(filepath.Join(dir, "none.json"), nil).ListCities)

	rr := do(t, r, http.MethodGet, "/cities", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var out struct {
		Cities []models.CityInfo `json:"cities"`
		Count  int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "madrid", out.Cities[0].ID)

	rr = do(t, r, http.MethodGet, "/missing", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Zero(t, out.Count)
}

func TestResultStore_Evicts(t *testing.T) {
	s := NewResultStore(2)
	a := s.Put(nil)
	b := s.Put(nil)
	c := s.Put(nil)
	_, ok := s.Get(a)
	assert.False(t, ok)
	_, ok = s.Get(b)
	assert.True(t, ok)
	_, ok = s.Get(c)
	assert.True(t, ok)
	assert.Equal(t, 2, s.Len())
}
