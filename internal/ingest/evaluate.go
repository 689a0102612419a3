package ingest

import (
	"fmt"

	"coldwatch/internal/models"
)

// Tolerances added outside the working bounds before a reading is
// classified, so noise-level fluctuations do not trigger escalation.
const (
	WarningTolerance = 1.0
	BreachTolerance  = 2.0
)

// Default safe range applied when an asset has no configured bounds
// (standard chilled-storage range).
const (
	FallbackMin = -2.0
	FallbackMax = 8.0
)

const (
	DirectionHigh   = "high"
	DirectionLow    = "low"
	DirectionWithin = "within"
)

// Evaluation is the classification verdict for one reading. Min/Max echo
// the configured bounds as passed in (nil when the fallback range applied);
// the fallback values affect only the comparison math and the reason text.
type Evaluation struct {
	Status           string   `json:"status"`
	Direction        string   `json:"direction"`
	Reason           string   `json:"reason"`
	Min              *float64 `json:"min"`
	Max              *float64 `json:"max"`
	WarningTolerance float64  `json:"warning_tolerance"`
	BreachTolerance  float64  `json:"breach_tolerance"`
}

// Evaluate classifies a reading against the asset working range. Pure and
// deterministic; first matching rule wins, breach checked before warning.
// Note the strict inequalities: reading == max+BreachTolerance is still
// only a warning.
func Evaluate(reading float64, workingMin, workingMax *float64) Evaluation {
	fallback := workingMin == nil && workingMax == nil

	min, max := FallbackMin, FallbackMax
	if workingMin != nil {
		min = *workingMin
	}
	if workingMax != nil {
		max = *workingMax
	}

	ev := Evaluation{
		Status:           models.StatusOK,
		Direction:        DirectionWithin,
		Min:              workingMin,
		Max:              workingMax,
		WarningTolerance: WarningTolerance,
		BreachTolerance:  BreachTolerance,
	}

	switch {
	case reading > max+BreachTolerance:
		ev.Status = models.StatusBreach
		ev.Direction = DirectionHigh
		ev.Reason = highReason(reading, max, BreachTolerance, fallback)
	case reading < min-BreachTolerance:
		ev.Status = models.StatusBreach
		ev.Direction = DirectionLow
		ev.Reason = lowReason(reading, min, BreachTolerance, fallback)
	case reading > max+WarningTolerance:
		ev.Status = models.StatusWarning
		ev.Direction = DirectionHigh
		ev.Reason = highReason(reading, max, WarningTolerance, fallback)
	case reading < min-WarningTolerance:
		ev.Status = models.StatusWarning
		ev.Direction = DirectionLow
		ev.Reason = lowReason(reading, min, WarningTolerance, fallback)
	default:
		if fallback {
			ev.Reason = fmt.Sprintf("Reading %.1f°C is within the default safe range", reading)
		} else {
			ev.Reason = fmt.Sprintf("Reading %.1f°C is within the asset working range", reading)
		}
	}
	return ev
}

// Downstream consumers pattern-match on the wording, in particular on
// "safe limit" (fallback bounds) vs "asset max/min ... tolerance"
// (configured bounds). Keep both templates stable.
func highReason(reading, max, tolerance float64, fallback bool) string {
	if fallback {
		return fmt.Sprintf("Reading %.1f°C is above the safe limit of %.1f°C", reading, max+tolerance)
	}
	return fmt.Sprintf("Reading %.1f°C is above asset max %.1f°C plus %.1f°C tolerance", reading, max, tolerance)
}

func lowReason(reading, min, tolerance float64, fallback bool) string {
	if fallback {
		return fmt.Sprintf("Reading %.1f°C is below the safe limit of %.1f°C", reading, min-tolerance)
	}
	return fmt.Sprintf("Reading %.1f°C is below asset min %.1f°C minus %.1f°C tolerance", reading, min, tolerance)
}
