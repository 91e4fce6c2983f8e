package handlers

import (
	"net/http"

	"pv-battery-estimator/internal/api/models"
	"pv-battery-estimator/internal/strategy"

	"github.com/gin-gonic/gin"
)

// CostModesHandler lists the grid cost strategies.
type CostModesHandler struct {
	defaultMode string
}

func NewCostModesHandler(defaultMode string) *CostModesHandler {
	if defaultMode == "" {
		defaultMode = strategy.Default
	}
	return &CostModesHandler{defaultMode: defaultMode}
}

// ListCostModes handles GET /api/v1/cost-modes
func (h *CostModesHandler) ListCostModes(c *gin.Context) {
	all := strategy.All()
	modes := make([]models.CostModeInfo, 0, len(all))
	for _, s := range all {
		modes = append(modes, models.CostModeInfo{
			Name:        s.Name(),
			Description: s.Description(),
			Default:     s.Name() == h.defaultMode,
		})
	}
	c.JSON(http.StatusOK, gin.H{"cost_modes": modes})
}
