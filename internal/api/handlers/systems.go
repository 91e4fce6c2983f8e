package handlers

import (
	"net/http"
	"path/filepath"

	"pv-battery-estimator/internal/api/models"
	"pv-battery-estimator/internal/config"
	"pv-battery-estimator/internal/logger"

	"github.com/gin-gonic/gin"
)

// SystemsHandler lists the household presets.
type SystemsHandler struct {
	dir string
	log logger.Logger
}

// NewSystemsHandler creates a handler reading presets from dir.
func NewSystemsHandler(dir string, log logger.Logger) *SystemsHandler {
	if log == nil {
		log = logger.NopLogger{}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	log.Infof("using systems directory: %s", dir)
	return &SystemsHandler{dir: dir, log: log}
}

// Dir returns the presets directory.
func (h *SystemsHandler) Dir() string { return h.dir }

// ListSystems handles GET /api/v1/systems
func (h *SystemsHandler) ListSystems(c *gin.Context) {
	systems := []models.SystemInfo{}

	presets, skipped, err := config.ListSystems(h.dir)
	if err != nil {
		h.log.Warnf("failed to read systems directory %s: %v", h.dir, err)
		c.JSON(http.StatusOK, gin.H{"systems": systems})
		return
	}
	for name, err := range skipped {
		h.log.Warnf("skipping system preset %s: %v", name, err)
	}

	for _, p := range presets {
		systems = append(systems, models.SystemInfo{
			ID:                 p.ID,
			Name:               p.System.Name,
			City:               p.System.City,
			AreaAvailable:      p.System.AreaAvailable,
			PanelSize:          p.System.PanelSize,
			BatteryCapacity:    p.System.BatteryCapacity,
			MonthlyConsumption: p.System.MonthlyConsumption,
		})
	}
	c.JSON(http.StatusOK, gin.H{"systems": systems})
}
