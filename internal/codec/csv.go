package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/terraincognita07/cyclecast/internal/models"
)

var CSVHeaders = []string{"ID", "Period start", "Cycle length", "Notes", "Created at"}

func EncodeCSV(w io.Writer, entries []models.CycleEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeaders); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := writer.Write([]string{
			entry.ID,
			formatDay(entry.PeriodStart),
			strconv.Itoa(entry.CycleLength),
			entry.Notes,
			formatCreatedAt(entry.CreatedAt),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func DecodeCSV(r io.Reader) ([]models.CycleEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrInvalidCSVHeader
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !matchesHeader(header) {
		return nil, ErrInvalidCSVHeader
	}

	entries := make([]models.CycleEntry, 0)
	for index := 0; ; index++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		if len(record) != len(CSVHeaders) {
			return nil, &EntryError{Index: index, Err: ErrInvalidCSVRowLength}
		}

		cycleLength, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, &EntryError{Index: index, Err: ErrInvalidCycleLength}
		}
		entry, err := decodeEntry(strings.TrimSpace(record[0]), record[1], cycleLength, record[3], record[4])
		if err != nil {
			return nil, &EntryError{Index: index, Err: err}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func matchesHeader(header []string) bool {
	if len(header) != len(CSVHeaders) {
		return false
	}
	for index, column := range header {
		if !strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(column, "\ufeff")), CSVHeaders[index]) {
			return false
		}
	}
	return true
}
