package services

import (
	"time"

	"github.com/terraincognita07/cyclecast/internal/models"
)

// FertilityStatusForDate classifies a day against a prediction. Windows can
// overlap; the first matching rule wins, so the ovulation day is never
// reported as merely fertile.
func FertilityStatusForDate(date time.Time, prediction models.PredictionResult) models.FertilityStatus {
	day := dateOnly(date)

	switch {
	case betweenCalendarDaysInclusive(day, prediction.NextPeriodStart, prediction.NextPeriodEnd):
		return models.FertilityMenstrual
	case !prediction.OvulationDate.IsZero() && sameCalendarDay(day, dateOnly(prediction.OvulationDate)):
		return models.FertilityOvulation
	case betweenCalendarDaysInclusive(day, prediction.FertileWindowStart, prediction.FertileWindowEnd):
		return models.FertilityFertile
	default:
		return models.FertilityOther
	}
}
