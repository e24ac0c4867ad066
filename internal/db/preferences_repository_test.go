package db

import (
	"testing"

	"github.com/terraincognita07/cyclecast/internal/models"
)

func TestPreferencesRepositoryLoadCreatesDefaults(t *testing.T) {
	repo := NewPreferencesRepository(openTestDatabase(t))

	preferences, err := repo.LoadPreferences()
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	if preferences.ID != models.PreferencesRowID ||
		preferences.CycleLengthDefault != models.DefaultCycleLength ||
		preferences.WeekStartDay != models.WeekStartSunday ||
		!preferences.NotificationsEnabled ||
		preferences.PinLockEnabled {
		t.Fatalf("unexpected default preferences %+v", preferences)
	}
}

func TestPreferencesRepositorySaveRoundTrip(t *testing.T) {
	repo := NewPreferencesRepository(openTestDatabase(t))

	preferences := models.DefaultPreferences()
	preferences.ID = 0
	preferences.CycleLengthDefault = 32
	preferences.WeekStartDay = models.WeekStartMonday
	preferences.NotificationsEnabled = false
	preferences.PinLockEnabled = true
	preferences.PinHash = "hash"
	if err := repo.SavePreferences(&preferences); err != nil {
		t.Fatalf("save preferences: %v", err)
	}

	loaded, err := repo.LoadPreferences()
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	if loaded.CycleLengthDefault != 32 ||
		loaded.WeekStartDay != models.WeekStartMonday ||
		loaded.NotificationsEnabled ||
		!loaded.PinLockEnabled ||
		loaded.PinHash != "hash" {
		t.Fatalf("unexpected saved preferences %+v", loaded)
	}
}
