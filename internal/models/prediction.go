package models

import "time"

type FertilityStatus string

const (
	FertilityMenstrual FertilityStatus = "menstrual"
	FertilityOvulation FertilityStatus = "ovulation"
	FertilityFertile   FertilityStatus = "fertile"
	FertilityOther     FertilityStatus = "other"
)

const (
	// AccuracyToleranceDays is how far a one-step prediction may miss the
	// next recorded start and still count as accurate.
	AccuracyToleranceDays = 2

	ConfidenceFloor   = 0.3
	ConfidenceCeiling = 1.0
)

type PredictionResult struct {
	NextPeriodStart    time.Time `json:"next_period_start"`
	NextPeriodEnd      time.Time `json:"next_period_end"`
	OvulationDate      time.Time `json:"ovulation_date"`
	FertileWindowStart time.Time `json:"fertile_window_start"`
	FertileWindowEnd   time.Time `json:"fertile_window_end"`
	Confidence         float64   `json:"confidence"`
}

type AnalyticsData struct {
	AverageCycleLength  float64 `json:"average_cycle_length"`
	CycleLengthVariance float64 `json:"cycle_length_variance"`
	MostCommonLength    int     `json:"most_common_length"`
	PredictabilityScore float64 `json:"predictability_score"`
	PeriodDuration      int     `json:"period_duration"`
	OvulationVariance   float64 `json:"ovulation_variance"`
	HistoricalAccuracy  float64 `json:"historical_accuracy"`
}
