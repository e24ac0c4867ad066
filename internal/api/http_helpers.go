package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecast/internal/models"
	"github.com/terraincognita07/cyclecast/internal/services"
)

const dayLayout = "2006-01-02"

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// localizedAPIError keeps the stable English error and adds a translated
// message for display.
func localizedAPIError(c *fiber.Ctx, status int, message string, key string, args ...any) error {
	localized := translateMessage(currentMessages(c), key)
	if len(args) > 0 {
		localized = fmt.Sprintf(localized, args...)
	}
	return c.Status(status).JSON(fiber.Map{
		"error":   message,
		"message": localized,
	})
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, _ := c.Locals(contextMessagesKey).(map[string]string)
	return messages
}

func translateMessage(messages map[string]string, key string) string {
	if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return key
}

func formatDay(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(dayLayout)
}

func buildEntryView(entry models.CycleEntry) entryView {
	return entryView{
		ID:          entry.ID,
		PeriodStart: formatDay(entry.PeriodStart),
		CycleLength: entry.CycleLength,
		Notes:       entry.Notes,
		CreatedAt:   entry.CreatedAt,
	}
}

func buildHistoryView(history models.CycleHistory) historyView {
	view := historyView{
		Entries:            make([]entryView, 0, len(history.Entries)),
		AverageCycleLength: history.AverageCycleLength,
		CycleLengths:       history.CycleLengths,
	}
	if view.CycleLengths == nil {
		view.CycleLengths = []int{}
	}
	for _, entry := range history.Entries {
		view.Entries = append(view.Entries, buildEntryView(entry))
	}
	return view
}

func (handler *Handler) buildPredictionView(c *fiber.Ctx, cycleStart time.Time, prediction models.PredictionResult) predictionView {
	level := services.ConfidenceLevelFor(prediction.Confidence)
	countdown := services.BuildCycleCountdown(handler.historyService.Today(), prediction)
	return predictionView{
		CycleStart:         formatDay(cycleStart),
		NextPeriodStart:    formatDay(prediction.NextPeriodStart),
		NextPeriodEnd:      formatDay(prediction.NextPeriodEnd),
		OvulationDate:      formatDay(prediction.OvulationDate),
		FertileWindowStart: formatDay(prediction.FertileWindowStart),
		FertileWindowEnd:   formatDay(prediction.FertileWindowEnd),
		Confidence:         prediction.Confidence,
		ConfidenceLevel:    level,
		ConfidenceLabel:    translateMessage(currentMessages(c), "confidence."+string(level)),
		Countdown:          countdown,
		CountdownLabel:     countdownLabel(currentMessages(c), countdown),
	}
}

func countdownLabel(messages map[string]string, countdown services.CycleCountdown) string {
	if countdown.NextPeriodOverdueDays > 0 {
		return fmt.Sprintf(translateMessage(messages, "countdown.period_overdue"), countdown.NextPeriodOverdueDays)
	}
	return fmt.Sprintf(translateMessage(messages, "countdown.days_until_period"), countdown.DaysUntilNextPeriod)
}

func (handler *Handler) parseOptionalDayQuery(c *fiber.Ctx, key string) (time.Time, bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}, false, nil
	}
	day, err := services.ParseDayInput(raw, handler.location)
	if err != nil {
		return time.Time{}, false, err
	}
	return day, true, nil
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("%s-%s.%s", exportFilenamePrefix, now.Format(dayLayout), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
