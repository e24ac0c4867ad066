package services

import "github.com/terraincognita07/cyclecast/internal/models"

func BuildAnalytics(history models.CycleHistory) models.AnalyticsData {
	variance := CycleVariance(history.CycleLengths)

	return models.AnalyticsData{
		AverageCycleLength:  variance.Average,
		CycleLengthVariance: variance.Variance,
		MostCommonLength:    MostCommonCycleLength(history.CycleLengths),
		PredictabilityScore: PredictionConfidence(history) * 100,
		PeriodDuration:      models.PeriodDuration,
		OvulationVariance:   variance.StdDev,
		HistoricalAccuracy:  HistoricalAccuracy(history),
	}
}
