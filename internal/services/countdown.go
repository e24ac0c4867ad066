package services

import (
	"time"

	"github.com/terraincognita07/cyclecast/internal/models"
)

type CycleCountdown struct {
	DaysUntilNextPeriod   int  `json:"days_until_next_period"`
	DaysUntilFertile      int  `json:"days_until_fertile_window"`
	InFertileWindow       bool `json:"in_fertile_window"`
	NextPeriodOverdueDays int  `json:"next_period_overdue_days"`
}

// BuildCycleCountdown measures today against a prediction. Negative
// distances mean the date has already passed.
func BuildCycleCountdown(today time.Time, prediction models.PredictionResult) CycleCountdown {
	countdown := CycleCountdown{
		DaysUntilNextPeriod: CalendarDaysBetween(today, prediction.NextPeriodStart),
		DaysUntilFertile:    CalendarDaysBetween(today, prediction.FertileWindowStart),
		InFertileWindow:     betweenCalendarDaysInclusive(today, prediction.FertileWindowStart, prediction.FertileWindowEnd),
	}
	if countdown.DaysUntilNextPeriod < 0 {
		countdown.NextPeriodOverdueDays = -countdown.DaysUntilNextPeriod
	}
	return countdown
}
