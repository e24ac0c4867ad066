package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/cyclecast/internal/models"
)

var ErrSettingsWeekStartInvalid = errors.New("settings week start day invalid")

type PreferencesStore interface {
	LoadPreferences() (models.Preferences, error)
	SavePreferences(preferences *models.Preferences) error
}

type PreferencesUpdate struct {
	CycleLengthDefault   *int    `json:"cycle_length_default"`
	WeekStartDay         *string `json:"week_start_day"`
	DarkMode             *bool   `json:"dark_mode"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
}

type SettingsService struct {
	preferences PreferencesStore
}

func NewSettingsService(preferences PreferencesStore) *SettingsService {
	return &SettingsService{preferences: preferences}
}

func (service *SettingsService) LoadPreferences() (models.Preferences, error) {
	return service.preferences.LoadPreferences()
}

// UpdatePreferences applies only the fields present in update. PIN fields
// are owned by PinService and cannot be changed here.
func (service *SettingsService) UpdatePreferences(update PreferencesUpdate) (models.Preferences, error) {
	preferences, err := service.preferences.LoadPreferences()
	if err != nil {
		return models.Preferences{}, fmt.Errorf("load preferences: %w", err)
	}

	if update.CycleLengthDefault != nil {
		if err := ValidateCycleLength(*update.CycleLengthDefault); err != nil {
			return models.Preferences{}, err
		}
		preferences.CycleLengthDefault = *update.CycleLengthDefault
	}
	if update.WeekStartDay != nil {
		weekStart := strings.ToLower(strings.TrimSpace(*update.WeekStartDay))
		if weekStart != models.WeekStartSunday && weekStart != models.WeekStartMonday {
			return models.Preferences{}, ErrSettingsWeekStartInvalid
		}
		preferences.WeekStartDay = weekStart
	}
	if update.DarkMode != nil {
		preferences.DarkMode = *update.DarkMode
	}
	if update.NotificationsEnabled != nil {
		preferences.NotificationsEnabled = *update.NotificationsEnabled
	}

	if err := service.preferences.SavePreferences(&preferences); err != nil {
		return models.Preferences{}, fmt.Errorf("save preferences: %w", err)
	}
	return preferences, nil
}
