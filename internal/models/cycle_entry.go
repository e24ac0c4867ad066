package models

import "time"

const (
	DefaultCycleLength = 28
	MinCycleLength     = 21
	MaxCycleLength     = 35
	PeriodDuration     = 5
	LutealPhaseDays    = 14

	FertileDaysBeforeOvulation = 5
	FertileDaysAfterOvulation  = 1
)

// CycleEntry records the first day of one period. CycleLength is how long
// the cycle that starts on PeriodStart lasted (or is assumed to last).
type CycleEntry struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	PeriodStart time.Time `gorm:"type:date;not null;index" json:"period_start"`
	CycleLength int       `gorm:"not null" json:"cycle_length"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

// CycleHistory is the aggregate the prediction engine reads. CycleLengths is
// derived from Entries and must be rebuilt whenever Entries change.
type CycleHistory struct {
	Entries            []CycleEntry `json:"entries"`
	AverageCycleLength int          `json:"average_cycle_length"`
	CycleLengths       []int        `json:"cycle_lengths"`
}
