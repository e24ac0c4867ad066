package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/cyclecast/internal/db"
	"github.com/terraincognita07/cyclecast/internal/services"
)

func newTestRepositories(t *testing.T) *db.Repositories {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cyclecast-cli.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(database) })
	return db.NewRepositories(database)
}

func newTestHistory(t *testing.T, days ...string) (*services.HistoryService, *db.Repositories) {
	t.Helper()

	repositories := newTestRepositories(t)
	history := services.NewHistoryService(repositories.CycleEntries, repositories.Preferences, time.UTC)
	for _, day := range days {
		start, err := time.Parse(dayLayout, day)
		if err != nil {
			t.Fatalf("parse %s: %v", day, err)
		}
		if _, _, err := history.AddEntry(start, ""); err != nil {
			t.Fatalf("add entry %s: %v", day, err)
		}
	}
	return history, repositories
}

func TestRunPredictCommand(t *testing.T) {
	history, _ := newTestHistory(t, "2026-01-01", "2026-01-29")

	var output bytes.Buffer
	if err := RunPredictCommand(history, &output, ""); err != nil {
		t.Fatalf("RunPredictCommand() unexpected error: %v", err)
	}
	for _, want := range []string{"Cycle start", "2026-01-29", "2026-02-26 to 2026-03-03", "2026-02-12", "100% (very_high)"} {
		if !strings.Contains(output.String(), want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, output.String())
		}
	}

	output.Reset()
	if err := RunPredictCommand(history, &output, "2026-03-01"); err != nil {
		t.Fatalf("RunPredictCommand() unexpected error: %v", err)
	}
	if !strings.Contains(output.String(), "2026-03-29 to 2026-04-03") {
		t.Fatalf("expected prediction from explicit date, got:\n%s", output.String())
	}

	if err := RunPredictCommand(history, &output, "tomorrow"); !errors.Is(err, services.ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay, got %v", err)
	}
}

func TestRunPredictCommandWithoutEntries(t *testing.T) {
	history, _ := newTestHistory(t)

	var output bytes.Buffer
	if err := RunPredictCommand(history, &output, ""); !errors.Is(err, services.ErrNoEntries) {
		t.Fatalf("expected ErrNoEntries, got %v", err)
	}
}

func TestRunAnalyticsCommand(t *testing.T) {
	history, _ := newTestHistory(t, "2026-01-01", "2026-01-27", "2026-02-26", "2026-03-26")

	var output bytes.Buffer
	if err := RunAnalyticsCommand(history, &output); err != nil {
		t.Fatalf("RunAnalyticsCommand() unexpected error: %v", err)
	}
	for _, want := range []string{"Average cycle length  28.0", "Most common length    26"} {
		if !strings.Contains(output.String(), want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, output.String())
		}
	}
}

func TestExportThenImportRoundTrip(t *testing.T) {
	source, _ := newTestHistory(t, "2026-01-01", "2026-01-29", "2026-02-26")

	for _, format := range []string{"json", "csv"} {
		var exported bytes.Buffer
		now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
		if err := RunExportCommand(services.NewExportService(source), &exported, format, "", "", now); err != nil {
			t.Fatalf("%s export: %v", format, err)
		}

		target, _ := newTestHistory(t, "2025-05-05")
		var output bytes.Buffer
		if err := RunImportCommand(target, &exported, &output, format); err != nil {
			t.Fatalf("%s import: %v", format, err)
		}
		if !strings.Contains(output.String(), "Imported 3 entries (average cycle 28 days)") {
			t.Fatalf("unexpected %s import output %q", format, output.String())
		}

		loaded, err := target.LoadHistory()
		if err != nil {
			t.Fatalf("load imported history: %v", err)
		}
		if len(loaded.Entries) != 3 || len(loaded.CycleLengths) != 2 {
			t.Fatalf("unexpected imported history %+v", loaded)
		}
	}
}

func TestExportAndImportRejectUnknownFormats(t *testing.T) {
	history, _ := newTestHistory(t)

	if err := RunExportCommand(services.NewExportService(history), &bytes.Buffer{}, "xml", "", "", time.Now()); err == nil {
		t.Fatal("expected unsupported export format to fail")
	}
	if err := RunImportCommand(history, strings.NewReader(""), &bytes.Buffer{}, "xml"); err == nil {
		t.Fatal("expected unsupported import format to fail")
	}
}
