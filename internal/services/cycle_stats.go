package services

import (
	"math"

	"github.com/terraincognita07/cyclecast/internal/models"
	"gonum.org/v1/gonum/stat"
)

type CycleVarianceStats struct {
	Average  float64 `json:"average"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
}

func ClampCycleLength(length int) int {
	return min(max(length, models.MinCycleLength), models.MaxCycleLength)
}

// WeightedAverageCycleLength expects lengths oldest first. Weights grow
// linearly with position so the latest cycle counts the most.
func WeightedAverageCycleLength(lengths []int) int {
	if len(lengths) == 0 {
		return models.DefaultCycleLength
	}

	count := float64(len(lengths))
	values := make([]float64, len(lengths))
	weights := make([]float64, len(lengths))
	for index, length := range lengths {
		values[index] = float64(ClampCycleLength(length))
		weights[index] = float64(index+1) / count
	}

	return int(math.Round(stat.Mean(values, weights)))
}

// CycleVariance reports population statistics over the raw, unclamped lengths.
func CycleVariance(lengths []int) CycleVarianceStats {
	if len(lengths) == 0 {
		return CycleVarianceStats{Average: models.DefaultCycleLength}
	}

	values := make([]float64, len(lengths))
	for index, length := range lengths {
		values[index] = float64(length)
	}

	average, variance := stat.PopMeanVariance(values, nil)
	if variance < 0 {
		variance = 0
	}
	return CycleVarianceStats{
		Average:  average,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}
}

// MostCommonCycleLength returns the first length to reach the highest
// frequency while scanning in input order.
func MostCommonCycleLength(lengths []int) int {
	if len(lengths) == 0 {
		return models.DefaultCycleLength
	}

	frequency := make(map[int]int, len(lengths))
	mostCommon := models.DefaultCycleLength
	maxFrequency := 0
	for _, length := range lengths {
		frequency[length]++
		if frequency[length] > maxFrequency {
			maxFrequency = frequency[length]
			mostCommon = length
		}
	}
	return mostCommon
}
