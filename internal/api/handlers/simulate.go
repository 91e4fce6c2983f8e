package handlers

import (
	"context"
	"net/http"
	"time"

	"pv-battery-estimator/internal/api/models"
	"pv-battery-estimator/internal/config"
	"pv-battery-estimator/internal/forecast"
	"pv-battery-estimator/internal/logger"
	"pv-battery-estimator/internal/metrics"
	"pv-battery-estimator/internal/model"
	"pv-battery-estimator/internal/simulator"
	"pv-battery-estimator/internal/strategy"

	"github.com/gin-gonic/gin"
)

// SimulateHandler runs simulations against a forecast provider.
type SimulateHandler struct {
	provider        forecast.Provider
	store           *ResultStore
	systemsDir      string
	defaultCostMode string
	metrics         *metrics.Recorder
	log             logger.Logger
}

// SimulateOptions configures a SimulateHandler.
type SimulateOptions struct {
	SystemsDir      string
	DefaultCostMode string
	Metrics         *metrics.Recorder
	Logger          logger.Logger
}

// NewSimulateHandler creates a new simulate handler
func NewSimulateHandler(p forecast.Provider, store *ResultStore, opts SimulateOptions) *SimulateHandler {
	if store == nil {
		store = NewResultStore(256)
	}
	log := opts.Logger
	if log == nil {
		log = logger.NopLogger{}
	}
	return &SimulateHandler{
		provider:        p,
		store:           store,
		systemsDir:      opts.SystemsDir,
		defaultCostMode: opts.DefaultCostMode,
		metrics:         opts.Metrics,
		log:             log,
	}
}

// Simulate handles POST /api/v1/simulate
func (h *SimulateHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, model.InputFormatError("%s", err.Error()))
		return
	}
	h.respond(c, req)
}

// Calculate handles the legacy POST /calcular
func (h *SimulateHandler) Calculate(c *gin.Context) {
	var req models.LegacyCalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, model.InputFormatError("%s", err.Error()))
		return
	}
	h.respond(c, req.ToSimulateRequest())
}

func (h *SimulateHandler) respond(c *gin.Context, req models.SimulateRequest) {
	date, err := forecast.ParseDate(req.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	sys, err := h.resolveSystem(req.SystemFields)
	if err != nil {
		writeError(c, err)
		return
	}
	cost, err := strategy.Lookup(h.costMode(req.CostMode))
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := h.estimate(c.Request.Context(), date, sys, cost)
	if err != nil {
		writeError(c, err)
		return
	}
	id := h.store.Put(res)
	c.JSON(http.StatusOK, buildResponse(id, sys.City, sys.BatteryCapacity, res, req.WantsHours()))
}

// GetHours handles GET /api/v1/simulate/:id/hours
func (h *SimulateHandler) GetHours(c *gin.Context) {
	id := c.Param("id")
	res, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    CodeNotFound,
				Message: "no stored simulation with id " + id,
			},
		})
		return
	}
	c.JSON(http.StatusOK, models.HoursResponse{
		ID:    id,
		Date:  res.Date.Format(forecast.DateLayout),
		Hours: toHours(res),
	})
}

func (h *SimulateHandler) costMode(requested string) string {
	if requested != "" {
		return requested
	}
	return h.defaultCostMode
}

func (h *SimulateHandler) estimate(ctx context.Context, date time.Time, sys config.SystemConfig, cost strategy.CostStrategy) (*simulator.Result, error) {
	req := forecast.Request{City: sys.City, Date: date, Orientation: sys.Orientation, Tilt: sys.Tilt}
	res, err := simulator.Estimate(ctx, h.provider, req, sys.ToModel(), simulator.WithCostStrategy(cost))

	var forecastErr error
	if model.KindOf(err) == model.ErrCollaboratorUnavailable {
		forecastErr = err
	}
	h.metrics.ObserveForecast(h.provider.Name(), forecastErr)

	if err != nil {
		h.metrics.ObserveSimulation(0, err)
		h.log.Warnf("simulation for %s on %s failed: %v", sys.City, req.Date.Format(forecast.DateLayout), err)
		return nil, err
	}
	h.metrics.ObserveSimulation(res.TotalSavings, nil)
	h.log.Debugf("simulation for %s on %s: savings %.4f (%s)", sys.City, req.Date.Format(forecast.DateLayout), res.TotalSavings, res.CostMode)
	return res, nil
}

// requiredFields must be present when no preset supplies them.
var requiredFields = []string{
	"city",
	"area_available",
	"panel_size",
	"battery_capacity",
	"initial_battery_charge",
	"initial_battery_cost",
	"monthly_consumption",
}

// resolveSystem builds the installation from request layers applied in
// order. A layer naming a preset replaces everything before it; set fields
// then override.
func (h *SimulateHandler) resolveSystem(layers ...models.SystemFields) (config.SystemConfig, error) {
	var sys config.SystemConfig
	set := map[string]bool{}
	for _, f := range layers {
		if f.System != "" {
			preset, err := h.loadPreset(f.System)
			if err != nil {
				return sys, err
			}
			sys = *preset
			for _, name := range requiredFields {
				set[name] = true
			}
		}
		applyFields(&sys, f, set)
	}
	for _, name := range requiredFields {
		if !set[name] {
			return sys, model.InputFormatError("%s is required when no system preset is given", name)
		}
	}
	return sys, nil
}

func (h *SimulateHandler) loadPreset(id string) (*config.SystemConfig, error) {
	if h.systemsDir == "" {
		return nil, model.InputFormatError("system presets are not configured")
	}
	preset, err := config.LoadSystemUnchecked(config.SystemPath(h.systemsDir, id))
	if err != nil {
		h.log.Warnf("failed to load system preset %s: %v", id, err)
		return nil, model.InputFormatError("unknown system preset %q", id)
	}
	return preset, nil
}

func applyFields(sys *config.SystemConfig, f models.SystemFields, set map[string]bool) {
	if f.City != "" {
		sys.City = f.City
		set["city"] = true
	}
	floats := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"orientation", f.Orientation, &sys.Orientation},
		{"tilt", f.Tilt, &sys.Tilt},
		{"area_available", f.AreaAvailable, &sys.AreaAvailable},
		{"panel_size", f.PanelSize, &sys.PanelSize},
		{"peak_power", f.PeakPower, &sys.PeakPower},
		{"battery_capacity", f.BatteryCapacity, &sys.BatteryCapacity},
		{"initial_battery_charge", f.InitialBatteryCharge, &sys.InitialBatteryCharge},
		{"initial_battery_cost", f.InitialBatteryCost, &sys.InitialBatteryCost},
		{"monthly_consumption", f.MonthlyConsumption, &sys.MonthlyConsumption},
	}
	for _, fl := range floats {
		if fl.src != nil {
			*fl.dst = *fl.src
			set[fl.name] = true
		}
	}
}
