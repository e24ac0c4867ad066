// Package codec converts recorded cycle entries to and from the JSON and CSV
// export formats. Dates are written as YYYY-MM-DD so whole-day values never
// pick up a time zone on the way out.
package codec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/cyclecast/internal/models"
)

const (
	FormatVersion = 1
	dayLayout     = "2006-01-02"
)

var (
	ErrInvalidDocument     = errors.New("invalid export document")
	ErrUnsupportedVersion  = errors.New("unsupported export version")
	ErrInvalidPeriodStart  = errors.New("invalid period start")
	ErrInvalidCycleLength  = errors.New("invalid cycle length")
	ErrInvalidCreatedAt    = errors.New("invalid created at")
	ErrInvalidCSVHeader    = errors.New("invalid csv header")
	ErrInvalidCSVRowLength = errors.New("invalid csv row length")
)

// EntryError reports which entry of an import failed to decode.
type EntryError struct {
	Index int
	Err   error
}

func (err *EntryError) Error() string {
	return fmt.Sprintf("entry %d: %v", err.Index, err.Err)
}

func (err *EntryError) Unwrap() error {
	return err.Err
}

func formatDay(value time.Time) string {
	return value.Format(dayLayout)
}

func parseDay(raw string) (time.Time, error) {
	parsed, err := time.Parse(dayLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidPeriodStart
	}
	return parsed, nil
}

func parseCreatedAt(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, ErrInvalidCreatedAt
	}
	return parsed.UTC(), nil
}

func validateCycleLength(value int) error {
	if value < models.MinCycleLength || value > models.MaxCycleLength {
		return ErrInvalidCycleLength
	}
	return nil
}

func formatCreatedAt(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
