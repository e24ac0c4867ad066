package services

import (
	"math"
	"sort"
	"time"

	"github.com/terraincognita07/cyclecast/internal/models"
)

func sortedEntries(entries []models.CycleEntry) []models.CycleEntry {
	sorted := make([]models.CycleEntry, 0, len(entries))
	sorted = append(sorted, entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PeriodStart.Before(sorted[j].PeriodStart)
	})
	return sorted
}

// CycleLengthsFromEntries returns the gaps between chronologically adjacent
// entries, oldest first. Gaps outside [21, 35] are dropped; the entries
// themselves are kept by the caller.
func CycleLengthsFromEntries(entries []models.CycleEntry) []int {
	if len(entries) < 2 {
		return []int{}
	}

	sorted := sortedEntries(entries)
	lengths := make([]int, 0, len(sorted)-1)
	for index := 1; index < len(sorted); index++ {
		gap := CalendarDaysBetween(sorted[index-1].PeriodStart, sorted[index].PeriodStart)
		if IsValidCycleLength(gap) {
			lengths = append(lengths, gap)
		}
	}
	return lengths
}

func BuildCycleHistory(entries []models.CycleEntry) models.CycleHistory {
	copied := make([]models.CycleEntry, 0, len(entries))
	copied = append(copied, entries...)

	lengths := CycleLengthsFromEntries(copied)
	average := models.DefaultCycleLength
	if len(lengths) > 0 {
		total := 0
		for _, length := range lengths {
			total += length
		}
		average = int(math.Round(float64(total) / float64(len(lengths))))
	}

	return models.CycleHistory{
		Entries:            copied,
		AverageCycleLength: average,
		CycleLengths:       lengths,
	}
}

// ResolveNewEntryCycleLength picks the cycle length stored on a new entry:
// the gap since the entry right before it by date when that gap is a
// plausible cycle, otherwise the configured default.
func ResolveNewEntryCycleLength(entries []models.CycleEntry, start time.Time, defaultLength int) int {
	if !IsValidCycleLength(defaultLength) {
		defaultLength = models.DefaultCycleLength
	}

	var previous *models.CycleEntry
	for index := range entries {
		entry := &entries[index]
		if CalendarDaysBetween(entry.PeriodStart, start) <= 0 {
			continue
		}
		if previous == nil || entry.PeriodStart.After(previous.PeriodStart) {
			previous = entry
		}
	}
	if previous == nil {
		return defaultLength
	}

	gap := CalendarDaysBetween(previous.PeriodStart, start)
	if IsValidCycleLength(gap) {
		return gap
	}
	return defaultLength
}

func LatestEntry(entries []models.CycleEntry) (models.CycleEntry, bool) {
	if len(entries) == 0 {
		return models.CycleEntry{}, false
	}
	sorted := sortedEntries(entries)
	return sorted[len(sorted)-1], true
}
