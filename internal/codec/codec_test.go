package codec

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/cyclecast/internal/models"
)

func sampleEntries() []models.CycleEntry {
	return []models.CycleEntry{
		{
			ID:          "a",
			PeriodStart: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			CycleLength: 28,
			Notes:       "light, then heavy",
			CreatedAt:   time.Date(2026, time.January, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			ID:          "b",
			PeriodStart: time.Date(2026, time.January, 29, 0, 0, 0, 0, time.UTC),
			CycleLength: 30,
			CreatedAt:   time.Date(2026, time.January, 29, 7, 0, 0, 0, time.UTC),
		},
	}
}

func TestEncodeJSONWritesDocument(t *testing.T) {
	var output bytes.Buffer
	exportedAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, EncodeJSON(&output, sampleEntries(), exportedAt))

	body := output.String()
	assert.Contains(t, body, `"version": 1`)
	assert.Contains(t, body, `"exported_at": "2026-03-01T12:00:00Z"`)
	assert.Contains(t, body, `"period_start": "2026-01-29"`)
	assert.Contains(t, body, `"created_at": "2026-01-01T08:30:00Z"`)
}

func TestDecodeJSONReadsEncodedEntries(t *testing.T) {
	var output bytes.Buffer
	require.NoError(t, EncodeJSON(&output, sampleEntries(), time.Now()))

	entries, err := DecodeJSON(&output)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, sampleEntries(), entries)
}

func TestDecodeJSONDefaultsMissingFields(t *testing.T) {
	entries, err := DecodeJSON(strings.NewReader(`{"entries":[{"period_start":"2026-02-01"}]}`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.DefaultCycleLength, entries[0].CycleLength)
	assert.Empty(t, entries[0].ID)
	assert.True(t, entries[0].CreatedAt.IsZero())
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		index int
	}{
		{name: "not json", input: `{`, want: ErrInvalidDocument, index: -1},
		{name: "unknown field", input: `{"entries":[],"extra":true}`, want: ErrInvalidDocument, index: -1},
		{name: "future version", input: `{"version":2,"entries":[]}`, want: ErrUnsupportedVersion, index: -1},
		{name: "bad date", input: `{"entries":[{"period_start":"2026-02-01"},{"period_start":"02/01/2026"}]}`, want: ErrInvalidPeriodStart, index: 1},
		{name: "short cycle", input: `{"entries":[{"period_start":"2026-02-01","cycle_length":14}]}`, want: ErrInvalidCycleLength, index: 0},
		{name: "bad created at", input: `{"entries":[{"period_start":"2026-02-01","created_at":"yesterday"}]}`, want: ErrInvalidCreatedAt, index: 0},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			_, err := DecodeJSON(strings.NewReader(testCase.input))
			require.ErrorIs(t, err, testCase.want)

			var entryErr *EntryError
			if testCase.index < 0 {
				assert.NotErrorAs(t, err, &entryErr)
				return
			}
			require.ErrorAs(t, err, &entryErr)
			assert.Equal(t, testCase.index, entryErr.Index)
		})
	}
}

func TestEncodeCSV(t *testing.T) {
	var output bytes.Buffer
	require.NoError(t, EncodeCSV(&output, sampleEntries()))

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Period start,Cycle length,Notes,Created at", lines[0])
	assert.Equal(t, `a,2026-01-01,28,"light, then heavy",2026-01-01T08:30:00Z`, lines[1])
	assert.Equal(t, "b,2026-01-29,30,,2026-01-29T07:00:00Z", lines[2])
}

func TestDecodeCSVReadsEncodedEntries(t *testing.T) {
	var output bytes.Buffer
	require.NoError(t, EncodeCSV(&output, sampleEntries()))

	entries, err := DecodeCSV(&output)
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(), entries)
}

func TestDecodeCSVErrors(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrInvalidCSVHeader)

	_, err = DecodeCSV(strings.NewReader("Date,Period\n2026-01-01,yes\n"))
	assert.ErrorIs(t, err, ErrInvalidCSVHeader)

	_, err = DecodeCSV(strings.NewReader("ID,Period start,Cycle length,Notes,Created at\na,2026-01-01,abc,,\n"))
	assert.ErrorIs(t, err, ErrInvalidCycleLength)

	_, err = DecodeCSV(strings.NewReader("ID,Period start,Cycle length,Notes,Created at\na,2026-01-01,28\n"))
	assert.ErrorIs(t, err, ErrInvalidCSVRowLength)
}
