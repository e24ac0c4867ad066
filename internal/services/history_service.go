package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/cyclecast/internal/models"
)

var (
	ErrEntryNotFound = errors.New("cycle entry not found")
	ErrEntryExists   = errors.New("cycle entry already exists for day")
	ErrEntryIDExists = errors.New("cycle entry id is not unique")
	ErrNoEntries     = errors.New("no cycle entries recorded")
)

type CycleEntryStore interface {
	ListEntries() ([]models.CycleEntry, error)
	CreateEntry(entry *models.CycleEntry) error
	DeleteEntry(id string) (bool, error)
	ReplaceAllEntries(entries []models.CycleEntry) error
}

type PreferencesReader interface {
	LoadPreferences() (models.Preferences, error)
}

// HistoryService owns every mutation of the recorded cycle history. The
// derived CycleHistory is rebuilt from storage on each call and never cached.
type HistoryService struct {
	entries     CycleEntryStore
	preferences PreferencesReader
	location    *time.Location
	now         func() time.Time
	newID       func() string
}

func NewHistoryService(entries CycleEntryStore, preferences PreferencesReader, location *time.Location) *HistoryService {
	if location == nil {
		location = time.UTC
	}
	return &HistoryService{
		entries:     entries,
		preferences: preferences,
		location:    location,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

func (service *HistoryService) Location() *time.Location {
	return service.location
}

func (service *HistoryService) Today() time.Time {
	return DateAtLocation(service.now(), service.location)
}

func (service *HistoryService) LoadHistory() (models.CycleHistory, error) {
	entries, err := service.entries.ListEntries()
	if err != nil {
		return models.CycleHistory{}, fmt.Errorf("list cycle entries: %w", err)
	}
	return BuildCycleHistory(entries), nil
}

func (service *HistoryService) AddEntry(start time.Time, rawNotes string) (models.CycleEntry, models.CycleHistory, error) {
	notes, err := NormalizeEntryNotes(rawNotes)
	if err != nil {
		return models.CycleEntry{}, models.CycleHistory{}, err
	}

	entries, err := service.entries.ListEntries()
	if err != nil {
		return models.CycleEntry{}, models.CycleHistory{}, fmt.Errorf("list cycle entries: %w", err)
	}

	day := CalendarDay(DateAtLocation(start, service.location))
	for _, existing := range entries {
		if sameCalendarDay(existing.PeriodStart, day) {
			return models.CycleEntry{}, models.CycleHistory{}, ErrEntryExists
		}
	}

	defaultLength := models.DefaultCycleLength
	if service.preferences != nil {
		preferences, err := service.preferences.LoadPreferences()
		if err != nil {
			return models.CycleEntry{}, models.CycleHistory{}, fmt.Errorf("load preferences: %w", err)
		}
		defaultLength = preferences.CycleLengthDefault
	}

	entry := models.CycleEntry{
		ID:          service.newID(),
		PeriodStart: day,
		CycleLength: ResolveNewEntryCycleLength(entries, day, defaultLength),
		Notes:       notes,
		CreatedAt:   service.now().UTC(),
	}
	if err := service.entries.CreateEntry(&entry); err != nil {
		return models.CycleEntry{}, models.CycleHistory{}, fmt.Errorf("create cycle entry: %w", err)
	}

	log.Debug().
		Str("component", "history").
		Str("entry_id", entry.ID).
		Str("period_start", entry.PeriodStart.Format(dayLayout)).
		Int("cycle_length", entry.CycleLength).
		Msg("cycle entry added")

	history := BuildCycleHistory(append(entries, entry))
	return entry, history, nil
}

func (service *HistoryService) DeleteEntry(id string) (models.CycleHistory, error) {
	deleted, err := service.entries.DeleteEntry(id)
	if err != nil {
		return models.CycleHistory{}, fmt.Errorf("delete cycle entry: %w", err)
	}
	if !deleted {
		return models.CycleHistory{}, ErrEntryNotFound
	}

	log.Debug().Str("component", "history").Str("entry_id", id).Msg("cycle entry deleted")
	return service.LoadHistory()
}

// ReplaceEntries swaps the whole history, used by imports. Every entry is
// checked before storage is touched, so a rejected import leaves the
// existing history in place.
func (service *HistoryService) ReplaceEntries(entries []models.CycleEntry) (models.CycleHistory, error) {
	normalized := make([]models.CycleEntry, 0, len(entries))
	seenDays := make(map[string]struct{}, len(entries))
	seenIDs := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		entry.PeriodStart = CalendarDay(entry.PeriodStart)
		key := entry.PeriodStart.Format(dayLayout)
		if _, exists := seenDays[key]; exists {
			return models.CycleHistory{}, ErrEntryExists
		}
		seenDays[key] = struct{}{}

		notes, err := NormalizeEntryNotes(entry.Notes)
		if err != nil {
			return models.CycleHistory{}, err
		}
		entry.Notes = notes

		if entry.ID == "" {
			entry.ID = service.newID()
		}
		if _, exists := seenIDs[entry.ID]; exists {
			return models.CycleHistory{}, ErrEntryIDExists
		}
		seenIDs[entry.ID] = struct{}{}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = service.now().UTC()
		}
		normalized = append(normalized, entry)
	}

	if err := service.entries.ReplaceAllEntries(normalized); err != nil {
		return models.CycleHistory{}, fmt.Errorf("replace cycle entries: %w", err)
	}
	return BuildCycleHistory(normalized), nil
}

func (service *HistoryService) PredictFrom(cycleStart time.Time) (models.PredictionResult, error) {
	history, err := service.LoadHistory()
	if err != nil {
		return models.PredictionResult{}, err
	}
	return PredictCycle(cycleStart, history), nil
}

// PredictLatest anchors the prediction on the most recent recorded period.
func (service *HistoryService) PredictLatest() (models.PredictionResult, models.CycleEntry, error) {
	history, err := service.LoadHistory()
	if err != nil {
		return models.PredictionResult{}, models.CycleEntry{}, err
	}

	latest, ok := LatestEntry(history.Entries)
	if !ok {
		return models.PredictionResult{}, models.CycleEntry{}, ErrNoEntries
	}
	return PredictCycle(latest.PeriodStart, history), latest, nil
}

func (service *HistoryService) Analytics() (models.AnalyticsData, error) {
	history, err := service.LoadHistory()
	if err != nil {
		return models.AnalyticsData{}, err
	}
	return BuildAnalytics(history), nil
}
