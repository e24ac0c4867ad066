package services

import (
	"math"
	"testing"

	"github.com/terraincognita07/cyclecast/internal/models"
)

func TestPredictionConfidence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		lengths []int
		want    float64
	}{
		{name: "no history is fully confident", lengths: nil, want: 1},
		{name: "regular cycles", lengths: []int{28, 28, 28, 28}, want: 1},
		{name: "mild spread", lengths: []int{26, 28, 30}, want: 1 - math.Sqrt(8.0/3.0)/28},
		{name: "zero average floors", lengths: []int{0, 0}, want: models.ConfidenceFloor},
		{name: "huge spread floors", lengths: []int{1, 200}, want: models.ConfidenceFloor},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			got := PredictionConfidence(models.CycleHistory{CycleLengths: testCase.lengths})
			if math.Abs(got-testCase.want) > 1e-9 {
				t.Fatalf("PredictionConfidence(%v) = %v, want %v", testCase.lengths, got, testCase.want)
			}
			if got < models.ConfidenceFloor || got > models.ConfidenceCeiling {
				t.Fatalf("confidence %v escaped [%v, %v]", got, models.ConfidenceFloor, models.ConfidenceCeiling)
			}
			if math.IsNaN(got) {
				t.Fatal("confidence must never be NaN")
			}
		})
	}
}

func TestPredictionConfidenceIdenticalHistories(t *testing.T) {
	t.Parallel()

	for value := 21; value <= 35; value++ {
		history := models.CycleHistory{CycleLengths: []int{value, value, value}}
		if got := PredictionConfidence(history); got != 1 {
			t.Fatalf("expected confidence 1 for constant %d-day cycles, got %v", value, got)
		}
	}
}

func TestConfidenceLevelFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		confidence float64
		want       ConfidenceLevel
	}{
		{confidence: 1, want: ConfidenceVeryHigh},
		{confidence: 0.8, want: ConfidenceVeryHigh},
		{confidence: 0.79, want: ConfidenceHigh},
		{confidence: 0.6, want: ConfidenceHigh},
		{confidence: 0.45, want: ConfidenceMedium},
		{confidence: 0.3, want: ConfidenceLow},
	}

	for _, testCase := range cases {
		if got := ConfidenceLevelFor(testCase.confidence); got != testCase.want {
			t.Fatalf("ConfidenceLevelFor(%v) = %q, want %q", testCase.confidence, got, testCase.want)
		}
	}
}
