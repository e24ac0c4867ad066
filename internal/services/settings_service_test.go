package services

import (
	"errors"
	"testing"
)

func TestSettingsServiceUpdatePreferences(t *testing.T) {
	store := newStubPreferencesStore()
	service := NewSettingsService(store)

	cycleLength := 31
	weekStart := " Monday "
	notifications := false
	updated, err := service.UpdatePreferences(PreferencesUpdate{
		CycleLengthDefault:   &cycleLength,
		WeekStartDay:         &weekStart,
		NotificationsEnabled: &notifications,
	})
	if err != nil {
		t.Fatalf("UpdatePreferences() unexpected error: %v", err)
	}
	if updated.CycleLengthDefault != 31 || updated.WeekStartDay != "monday" || updated.NotificationsEnabled {
		t.Fatalf("unexpected updated preferences %+v", updated)
	}
	if updated.DarkMode {
		t.Fatal("expected untouched dark mode to keep its value")
	}
	if store.saves != 1 {
		t.Fatalf("expected one save, got %d", store.saves)
	}
}

func TestSettingsServiceUpdatePreferencesValidation(t *testing.T) {
	store := newStubPreferencesStore()
	service := NewSettingsService(store)

	tooShort := 14
	if _, err := service.UpdatePreferences(PreferencesUpdate{CycleLengthDefault: &tooShort}); !errors.Is(err, ErrInvalidCycleLength) {
		t.Fatalf("expected ErrInvalidCycleLength, got %v", err)
	}

	weekStart := "friday"
	if _, err := service.UpdatePreferences(PreferencesUpdate{WeekStartDay: &weekStart}); !errors.Is(err, ErrSettingsWeekStartInvalid) {
		t.Fatalf("expected ErrSettingsWeekStartInvalid, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("expected no saves for invalid input, got %d", store.saves)
	}
}
