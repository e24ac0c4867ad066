package services

import (
	"time"

	"github.com/terraincognita07/cyclecast/internal/models"
)

type ExportService struct {
	history *HistoryService
}

func NewExportService(history *HistoryService) *ExportService {
	return &ExportService{history: history}
}

// Entries returns the recorded entries in date order, limited to the
// inclusive [from, to] calendar range when bounds are given.
func (service *ExportService) Entries(from *time.Time, to *time.Time) ([]models.CycleEntry, error) {
	history, err := service.history.LoadHistory()
	if err != nil {
		return nil, err
	}
	return FilterEntriesByRange(history.Entries, from, to), nil
}

func FilterEntriesByRange(entries []models.CycleEntry, from *time.Time, to *time.Time) []models.CycleEntry {
	sorted := sortedEntries(entries)
	filtered := make([]models.CycleEntry, 0, len(sorted))
	for _, entry := range sorted {
		if from != nil && CalendarDaysBetween(*from, entry.PeriodStart) < 0 {
			continue
		}
		if to != nil && CalendarDaysBetween(entry.PeriodStart, *to) < 0 {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}
