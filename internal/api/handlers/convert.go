package handlers

import (
	"pv-battery-estimator/internal/analysis"
	"pv-battery-estimator/internal/api/models"
	"pv-battery-estimator/internal/forecast"
	"pv-battery-estimator/internal/simulator"
)

func buildResponse(id, city string, capacity float64, res *simulator.Result, includeHours bool) models.SimulateResponse {
	resp := models.SimulateResponse{
		ID:                   id,
		Date:                 res.Date.Format(forecast.DateLayout),
		City:                 city,
		InitialBatteryCharge: res.InitialCharge,
		InitialBatteryCost:   res.InitialChargeCost,
		TotalSavings:         res.TotalSavings,
		CostMode:             res.CostMode,
		Costs:                toCosts(res),
		Installation: models.Installation{
			PanelCount:       res.PanelCount,
			TotalPanelArea:   res.TotalPanelArea,
			DailyConsumption: res.DailyConsumption,
			FinalCharge:      res.FinalCharge,
		},
		Totals: toTotals(res.Totals),
		KPIs:   toKPIs(analysis.ComputeKPIs(res, capacity)),
	}
	if len(res.TariffKWh) > 0 {
		p := analysis.ComputePriceStats(res.TariffKWh)
		resp.Prices = &models.PriceSummary{
			Mean:         p.Mean,
			Min:          p.Min,
			Max:          p.Max,
			P05:          p.P05,
			P95:          p.P95,
			CheapestHour: p.CheapestHour,
			DearestHour:  p.DearestHour,
		}
	}
	if includeHours {
		resp.Hours = toHours(res)
	}
	return resp
}

func toCosts(res *simulator.Result) models.Costs {
	return models.Costs{
		WithoutPV:        res.CostWithoutPV,
		WithPV:           res.CostWithPV,
		SaleRevenue:      res.SaleRevenue,
		MeanSpotPriceKWh: res.MeanSpotPriceKWh,
	}
}

func toTotals(t simulator.Totals) models.Totals {
	return models.Totals{
		Generated:    t.Generated,
		Consumption:  t.Consumption,
		SelfConsumed: t.SelfConsumed,
		Stored:       t.Stored,
		Sold:         t.Sold,
		BatteryUsed:  t.BatteryUsed,
		GridImport:   t.GridImport,
	}
}

func toKPIs(k analysis.KPIs) models.KPIs {
	return models.KPIs{
		SelfConsumptionRate: k.SelfConsumptionRate,
		SelfSufficiency:     k.SelfSufficiency,
		BatteryCycles:       k.BatteryCycles,
	}
}

func toHours(res *simulator.Result) []models.HourRow {
	rows := make([]models.HourRow, len(res.Hours))
	for i, h := range res.Hours {
		rows[i] = models.HourRow{
			Hour:          h.Hour,
			Action:        string(h.Action),
			Generated:     h.Generated,
			Consumption:   h.Consumption,
			SelfConsumed:  h.SelfConsumed,
			Stored:        h.Stored,
			Sold:          h.Sold,
			BatteryUsed:   h.BatteryUsed,
			GridImport:    h.GridImport,
			BatteryCharge: h.BatteryCharge,
		}
	}
	return rows
}
