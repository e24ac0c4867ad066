package services

import (
	"testing"

	"github.com/terraincognita07/cyclecast/internal/models"
)

func TestBuildCycleCountdown(t *testing.T) {
	t.Parallel()

	prediction := PredictCycle(mustParseDay(t, "2024-01-01"), models.CycleHistory{CycleLengths: []int{28}})

	before := BuildCycleCountdown(mustParseDay(t, "2024-01-05"), prediction)
	if before.DaysUntilNextPeriod != 24 || before.DaysUntilFertile != 5 || before.InFertileWindow {
		t.Fatalf("unexpected countdown before fertile window: %+v", before)
	}

	inside := BuildCycleCountdown(mustParseDay(t, "2024-01-12"), prediction)
	if !inside.InFertileWindow || inside.DaysUntilFertile != -2 {
		t.Fatalf("unexpected countdown inside fertile window: %+v", inside)
	}

	overdue := BuildCycleCountdown(mustParseDay(t, "2024-02-01"), prediction)
	if overdue.DaysUntilNextPeriod != -3 || overdue.NextPeriodOverdueDays != 3 {
		t.Fatalf("unexpected overdue countdown: %+v", overdue)
	}
}
