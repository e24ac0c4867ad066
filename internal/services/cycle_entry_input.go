package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/cyclecast/internal/models"
)

const MaxEntryNotesLength = 500

var (
	ErrInvalidDay         = errors.New("invalid day")
	ErrInvalidCycleLength = errors.New("invalid cycle length")
	ErrNotesTooLong       = errors.New("notes too long")
)

func IsValidCycleLength(value int) bool {
	return value >= models.MinCycleLength && value <= models.MaxCycleLength
}

func ValidateCycleLength(value int) error {
	if !IsValidCycleLength(value) {
		return ErrInvalidCycleLength
	}
	return nil
}

func ParseDayInput(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(dayLayout, strings.TrimSpace(raw), location)
	if err != nil {
		return time.Time{}, ErrInvalidDay
	}
	return parsed, nil
}

func NormalizeEntryNotes(raw string) (string, error) {
	notes := strings.TrimSpace(raw)
	if utf8.RuneCountInString(notes) > MaxEntryNotesLength {
		return "", ErrNotesTooLong
	}
	return notes, nil
}
