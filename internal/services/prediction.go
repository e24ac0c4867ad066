package services

import (
	"time"

	"github.com/terraincognita07/cyclecast/internal/models"
)

// PredictCycle projects the period that follows cycleStart. Time of day on
// cycleStart is discarded; the result keeps cycleStart's location.
func PredictCycle(cycleStart time.Time, history models.CycleHistory) models.PredictionResult {
	start := dateOnly(cycleStart)

	effectiveLength := models.DefaultCycleLength
	if len(history.CycleLengths) > 0 {
		effectiveLength = WeightedAverageCycleLength(history.CycleLengths)
	}

	nextPeriodStart := addDays(start, effectiveLength)
	ovulationDate := addDays(nextPeriodStart, -models.LutealPhaseDays)

	return models.PredictionResult{
		NextPeriodStart:    nextPeriodStart,
		NextPeriodEnd:      addDays(nextPeriodStart, models.PeriodDuration),
		OvulationDate:      ovulationDate,
		FertileWindowStart: addDays(ovulationDate, -models.FertileDaysBeforeOvulation),
		FertileWindowEnd:   addDays(ovulationDate, models.FertileDaysAfterOvulation),
		Confidence:         PredictionConfidence(history),
	}
}
