package model

// Action is a human-friendly battery mode for an hour.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionCharging    Action = "CHARGING"
	ActionIdle        Action = "IDLE"
	ActionDischarging Action = "DISCHARGING"
)

// ActionFromEnergy derives the mode from the energy stored and drawn in an hour.
// The dispatch policy never does both in the same hour.
func ActionFromEnergy(stored, drawn float64) Action {
	switch {
	case stored > 0:
		return ActionCharging
	case drawn > 0:
		return ActionDischarging
	default:
		return ActionIdle
	}
}
