package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/cyclecast/internal/models"
	"github.com/terraincognita07/cyclecast/internal/services"
)

// GetPrediction predicts from ?date= when given, otherwise from the most
// recent recorded period.
func (handler *Handler) GetPrediction(c *fiber.Ctx) error {
	start, hasStart, err := handler.parseOptionalDayQuery(c, "date")
	if err != nil {
		return localizedAPIError(c, fiber.StatusBadRequest, "invalid date", "error.invalid_date")
	}

	cycleStart, prediction, status, message := handler.resolvePrediction(start, hasStart)
	if status != 0 {
		return handler.predictionError(c, status, message)
	}
	return c.JSON(handler.buildPredictionView(c, cycleStart, prediction))
}

func (handler *Handler) GetFertility(c *fiber.Ctx) error {
	day, hasDay, err := handler.parseOptionalDayQuery(c, "date")
	if err != nil {
		return localizedAPIError(c, fiber.StatusBadRequest, "invalid date", "error.invalid_date")
	}
	if !hasDay {
		day = handler.historyService.Today()
	}

	start, hasStart, err := handler.parseOptionalDayQuery(c, "start")
	if err != nil {
		return localizedAPIError(c, fiber.StatusBadRequest, "invalid date", "error.invalid_date")
	}

	cycleStart, prediction, status, message := handler.resolvePrediction(start, hasStart)
	if status != 0 {
		return handler.predictionError(c, status, message)
	}

	fertility := services.FertilityStatusForDate(day, prediction)
	return c.JSON(fiber.Map{
		"date":       formatDay(day),
		"status":     fertility,
		"label":      translateMessage(currentMessages(c), "fertility."+string(fertility)),
		"language":   currentLanguage(c),
		"prediction": handler.buildPredictionView(c, cycleStart, prediction),
	})
}

func (handler *Handler) resolvePrediction(start time.Time, hasStart bool) (time.Time, models.PredictionResult, int, string) {
	if hasStart {
		prediction, err := handler.historyService.PredictFrom(start)
		if err != nil {
			log.Error().Err(err).Str("component", "api").Msg("predict from date")
			return time.Time{}, models.PredictionResult{}, fiber.StatusInternalServerError, "failed to build prediction"
		}
		return start, prediction, 0, ""
	}

	prediction, latest, err := handler.historyService.PredictLatest()
	if errors.Is(err, services.ErrNoEntries) {
		return time.Time{}, models.PredictionResult{}, fiber.StatusNotFound, "no entries"
	}
	if err != nil {
		log.Error().Err(err).Str("component", "api").Msg("predict from latest entry")
		return time.Time{}, models.PredictionResult{}, fiber.StatusInternalServerError, "failed to build prediction"
	}
	return latest.PeriodStart, prediction, 0, ""
}

func (handler *Handler) predictionError(c *fiber.Ctx, status int, message string) error {
	if status == fiber.StatusNotFound {
		return localizedAPIError(c, status, message, "error.no_entries")
	}
	return apiError(c, status, message)
}
