package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ParseExportRange reads optional YYYY-MM-DD bounds. Missing bounds stay nil.
func ParseExportRange(rawFrom string, rawTo string) (*time.Time, *time.Time, error) {
	from, err := parseOptionalExportDay(rawFrom, ErrExportFromDateInvalid)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseOptionalExportDay(rawTo, ErrExportToDateInvalid)
	if err != nil {
		return nil, nil, err
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrExportRangeInvalid
	}
	return from, to, nil
}

func parseOptionalExportDay(raw string, invalid error) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dayLayout, trimmed)
	if err != nil {
		return nil, invalid
	}
	day := CalendarDay(parsed)
	return &day, nil
}
