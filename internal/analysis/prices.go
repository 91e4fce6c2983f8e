package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// PriceStats is a one-day summary of an hourly price series (currency/kWh).
type PriceStats struct {
	Count int

	Min  float64
	Max  float64
	Mean float64
	P05  float64
	P95  float64

	SpreadP95P05 float64

	CheapestHour int
	DearestHour  int
}

// ComputePriceStats summarises prices; hours are the slice indices.
func ComputePriceStats(prices []float64) PriceStats {
	p := PriceStats{Count: len(prices)}
	if len(prices) == 0 {
		return p
	}

	p.Min, p.Max = math.Inf(1), math.Inf(-1)
	for h, v := range prices {
		if v < p.Min {
			p.Min, p.CheapestHour = v, h
		}
		if v > p.Max {
			p.Max, p.DearestHour = v, h
		}
	}

	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)
	p.Mean = stat.Mean(sorted, nil)
	p.P05 = stat.Quantile(0.05, stat.LinInterp, sorted, nil)
	p.P95 = stat.Quantile(0.95, stat.LinInterp, sorted, nil)
	p.SpreadP95P05 = p.P95 - p.P05
	return p
}
