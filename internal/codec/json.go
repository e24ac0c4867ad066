package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/cyclecast/internal/models"
)

type Document struct {
	Version    int         `json:"version"`
	ExportedAt string      `json:"exported_at"`
	Entries    []JSONEntry `json:"entries"`
}

type JSONEntry struct {
	ID          string `json:"id"`
	PeriodStart string `json:"period_start"`
	CycleLength int    `json:"cycle_length"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func NewDocument(entries []models.CycleEntry, exportedAt time.Time) Document {
	document := Document{
		Version:    FormatVersion,
		ExportedAt: exportedAt.Format(time.RFC3339),
		Entries:    make([]JSONEntry, 0, len(entries)),
	}
	for _, entry := range entries {
		document.Entries = append(document.Entries, JSONEntry{
			ID:          entry.ID,
			PeriodStart: formatDay(entry.PeriodStart),
			CycleLength: entry.CycleLength,
			Notes:       entry.Notes,
			CreatedAt:   formatCreatedAt(entry.CreatedAt),
		})
	}
	return document
}

func EncodeJSON(w io.Writer, entries []models.CycleEntry, exportedAt time.Time) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewDocument(entries, exportedAt))
}

// DecodeJSON reads a document written by EncodeJSON. Version 0 is accepted
// for hand-written files that omit the field.
func DecodeJSON(r io.Reader) ([]models.CycleEntry, error) {
	var document Document
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if document.Version > FormatVersion || document.Version < 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, document.Version)
	}

	entries := make([]models.CycleEntry, 0, len(document.Entries))
	for index, raw := range document.Entries {
		entry, err := decodeEntry(raw.ID, raw.PeriodStart, raw.CycleLength, raw.Notes, raw.CreatedAt)
		if err != nil {
			return nil, &EntryError{Index: index, Err: err}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeEntry(id string, periodStart string, cycleLength int, notes string, createdAt string) (models.CycleEntry, error) {
	start, err := parseDay(periodStart)
	if err != nil {
		return models.CycleEntry{}, err
	}
	if cycleLength == 0 {
		cycleLength = models.DefaultCycleLength
	}
	if err := validateCycleLength(cycleLength); err != nil {
		return models.CycleEntry{}, err
	}
	created, err := parseCreatedAt(createdAt)
	if err != nil {
		return models.CycleEntry{}, err
	}

	return models.CycleEntry{
		ID:          id,
		PeriodStart: start,
		CycleLength: cycleLength,
		Notes:       notes,
		CreatedAt:   created,
	}, nil
}
