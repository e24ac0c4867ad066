package services

import (
	"sort"

	"github.com/terraincognita07/cyclecast/internal/models"
)

// HistoricalAccuracy scores each entry's logged cycle length as a one-step
// predictor of the following entry. Returns a percentage in [0, 100].
func HistoricalAccuracy(history models.CycleHistory) float64 {
	if len(history.Entries) < 2 {
		return 0
	}

	sorted := make([]models.CycleEntry, 0, len(history.Entries))
	sorted = append(sorted, history.Entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PeriodStart.Before(sorted[j].PeriodStart)
	})

	accurate := 0
	for index := 0; index < len(sorted)-1; index++ {
		current := sorted[index]
		next := sorted[index+1]

		predictedNext := current.PeriodStart.AddDate(0, 0, current.CycleLength)
		diff := CalendarDaysBetween(predictedNext, next.PeriodStart)
		if diff < 0 {
			diff = -diff
		}
		if diff <= models.AccuracyToleranceDays {
			accurate++
		}
	}

	pairs := len(sorted) - 1
	return float64(accurate) / float64(pairs) * 100
}
