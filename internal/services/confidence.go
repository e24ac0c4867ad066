package services

import "github.com/terraincognita07/cyclecast/internal/models"

type ConfidenceLevel string

const (
	ConfidenceVeryHigh ConfidenceLevel = "very_high"
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceMedium   ConfidenceLevel = "medium"
	ConfidenceLow      ConfidenceLevel = "low"
)

// PredictionConfidence maps the coefficient of variation of the recorded
// cycle lengths onto [0.3, 1]. A forecast is always produced, so irregular
// histories bottom out at the floor instead of zero.
func PredictionConfidence(history models.CycleHistory) float64 {
	variance := CycleVariance(history.CycleLengths)
	if variance.Average <= 0 {
		return models.ConfidenceFloor
	}

	cv := variance.StdDev / variance.Average
	return min(models.ConfidenceCeiling, max(models.ConfidenceFloor, 1-cv))
}

func ConfidenceLevelFor(confidence float64) ConfidenceLevel {
	switch {
	case confidence >= 0.8:
		return ConfidenceVeryHigh
	case confidence >= 0.6:
		return ConfidenceHigh
	case confidence >= 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
