package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/terraincognita07/cyclecast/internal/codec"
	"github.com/terraincognita07/cyclecast/internal/models"
	"github.com/terraincognita07/cyclecast/internal/services"
)

const dayLayout = "2006-01-02"

// RunPredictCommand prints the forecast from rawDate, or from the latest
// recorded period when rawDate is empty.
func RunPredictCommand(history *services.HistoryService, out io.Writer, rawDate string) error {
	var (
		cycleStart time.Time
		prediction models.PredictionResult
	)

	if strings.TrimSpace(rawDate) == "" {
		predicted, latest, err := history.PredictLatest()
		if err != nil {
			return err
		}
		cycleStart, prediction = latest.PeriodStart, predicted
	} else {
		start, err := services.ParseDayInput(rawDate, history.Location())
		if err != nil {
			return fmt.Errorf("%w: %q", err, rawDate)
		}
		predicted, err := history.PredictFrom(start)
		if err != nil {
			return err
		}
		cycleStart, prediction = start, predicted
	}

	countdown := services.BuildCycleCountdown(history.Today(), prediction)
	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "Cycle start\t%s\n", cycleStart.Format(dayLayout))
	fmt.Fprintf(writer, "Next period\t%s to %s\n", prediction.NextPeriodStart.Format(dayLayout), prediction.NextPeriodEnd.Format(dayLayout))
	fmt.Fprintf(writer, "Ovulation\t%s\n", prediction.OvulationDate.Format(dayLayout))
	fmt.Fprintf(writer, "Fertile window\t%s to %s\n", prediction.FertileWindowStart.Format(dayLayout), prediction.FertileWindowEnd.Format(dayLayout))
	fmt.Fprintf(writer, "Confidence\t%.0f%% (%s)\n", prediction.Confidence*100, services.ConfidenceLevelFor(prediction.Confidence))
	if countdown.NextPeriodOverdueDays > 0 {
		fmt.Fprintf(writer, "Overdue\t%d day(s)\n", countdown.NextPeriodOverdueDays)
	} else {
		fmt.Fprintf(writer, "Days until period\t%d\n", countdown.DaysUntilNextPeriod)
	}
	return writer.Flush()
}

func RunAnalyticsCommand(history *services.HistoryService, out io.Writer) error {
	analytics, err := history.Analytics()
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "Average cycle length\t%.1f\n", analytics.AverageCycleLength)
	fmt.Fprintf(writer, "Variance\t%.2f\n", analytics.CycleLengthVariance)
	fmt.Fprintf(writer, "Most common length\t%d\n", analytics.MostCommonLength)
	fmt.Fprintf(writer, "Predictability\t%.0f%%\n", analytics.PredictabilityScore)
	fmt.Fprintf(writer, "Ovulation variance\t%.2f\n", analytics.OvulationVariance)
	fmt.Fprintf(writer, "Historical accuracy\t%.0f%%\n", analytics.HistoricalAccuracy)
	return writer.Flush()
}

func RunExportCommand(export *services.ExportService, out io.Writer, format string, rawFrom string, rawTo string, now time.Time) error {
	from, to, err := services.ParseExportRange(rawFrom, rawTo)
	if err != nil {
		return err
	}
	entries, err := export.Entries(from, to)
	if err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return codec.EncodeJSON(out, entries, now)
	case "csv":
		return codec.EncodeCSV(out, entries)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func RunImportCommand(history *services.HistoryService, in io.Reader, out io.Writer, format string) error {
	var (
		entries []models.CycleEntry
		err     error
	)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		entries, err = codec.DecodeJSON(in)
	case "csv":
		entries, err = codec.DecodeCSV(in)
	default:
		return fmt.Errorf("unsupported import format %q", format)
	}
	if err != nil {
		return err
	}

	imported, err := history.ReplaceEntries(entries)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported %d entries (average cycle %d days)\n", len(imported.Entries), imported.AverageCycleLength)
	return nil
}
