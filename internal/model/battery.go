package model

import "math"

// BatteryState captures the mutable charge of the battery during one run.
type BatteryState struct {
	// Charge is the stored energy in kWh, within [0, CapacityMax].
	Charge float64
}

// Store charges the battery from PV surplus.
// At most surplus*efficiency kWh is stored, limited by the headroom left
// below capacityMax. It returns the stored (post-efficiency) energy and the
// surplus left for the grid, reduced by the pre-efficiency energy consumed.
func (b *BatteryState) Store(surplus, capacityMax, efficiency float64) (stored, remaining float64) {
	remaining = surplus
	if surplus <= 0 || b.Charge >= capacityMax {
		return 0, remaining
	}
	headroom := capacityMax - b.Charge
	stored = math.Min(surplus*efficiency, headroom)
	b.Charge = clamp(b.Charge+stored, 0, capacityMax)
	remaining -= stored / efficiency
	return stored, remaining
}

// Draw discharges the battery to cover unmet demand.
// At most Charge*efficiency kWh is delivered; the charge drops by the
// delivered energy divided by efficiency. It returns the delivered energy
// and the demand still unmet.
func (b *BatteryState) Draw(unmet, capacityMax, efficiency float64) (drawn, remaining float64) {
	remaining = unmet
	if unmet <= 0 || b.Charge <= 0 {
		return 0, remaining
	}
	available := b.Charge * efficiency
	drawn = math.Min(unmet, available)
	b.Charge = clamp(b.Charge-drawn/efficiency, 0, capacityMax)
	remaining -= drawn
	return drawn, remaining
}

// clamp absorbs floating-point noise at the battery bounds.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
