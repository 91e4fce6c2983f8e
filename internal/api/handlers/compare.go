package handlers

import (
	"net/http"

	"pv-battery-estimator/internal/analysis"
	"pv-battery-estimator/internal/api/models"
	"pv-battery-estimator/internal/forecast"
	"pv-battery-estimator/internal/model"
	"pv-battery-estimator/internal/simulator"
	"pv-battery-estimator/internal/strategy"

	"github.com/gin-gonic/gin"
)

// Compare handles POST /api/v1/simulate/compare
//
// Each variation is applied over the base system and simulated for the same
// date. Variations that fail are reported separately; the rest are ranked by
// total savings.
func (h *SimulateHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, model.InputFormatError("%s", err.Error()))
		return
	}
	date, err := forecast.ParseDate(req.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	cost, err := strategy.Lookup(h.costMode(req.CostMode))
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	scenarios := make([]analysis.Scenario, 0, len(req.Variations))
	ids := make(map[*simulator.Result]string, len(req.Variations))
	var failed []models.FailedVariation

	for _, v := range req.Variations {
		sys, err := h.resolveSystem(req.Base, v.SystemFields)
		var res *simulator.Result
		if err == nil {
			res, err = h.estimate(ctx, date, sys, cost)
		}
		if err != nil {
			_, detail := errorDetail(err)
			failed = append(failed, models.FailedVariation{Name: v.Name, Error: detail})
			continue
		}
		ids[res] = h.store.Put(res)
		scenarios = append(scenarios, analysis.Scenario{Name: v.Name, Capacity: sys.BatteryCapacity, Result: res})
	}

	ranked := analysis.RankBySavings(scenarios)
	comparison := make([]models.ComparisonResult, 0, len(ranked))
	for _, r := range ranked {
		comparison = append(comparison, models.ComparisonResult{
			Rank:         r.Rank,
			Name:         r.Name,
			ID:           ids[r.Result],
			TotalSavings: r.Result.TotalSavings,
			Costs:        toCosts(r.Result),
			Totals:       toTotals(r.Result.Totals),
			KPIs:         toKPIs(r.KPIs),
		})
	}

	c.JSON(http.StatusOK, models.CompareResponse{
		Date:       req.Date,
		CostMode:   cost.Name(),
		Comparison: comparison,
		Failed:     failed,
	})
}
