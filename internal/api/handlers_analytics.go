package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/cyclecast/internal/models"
	"github.com/terraincognita07/cyclecast/internal/services"
)

type analyticsView struct {
	models.AnalyticsData
	CycleCount      int                      `json:"cycle_count"`
	ConfidenceLevel services.ConfidenceLevel `json:"confidence_level"`
	ConfidenceLabel string                   `json:"confidence_label"`
}

func (handler *Handler) GetAnalytics(c *fiber.Ctx) error {
	history, err := handler.historyService.LoadHistory()
	if err != nil {
		log.Error().Err(err).Str("component", "api").Msg("load history")
		return apiError(c, fiber.StatusInternalServerError, "failed to load analytics")
	}

	analytics := services.BuildAnalytics(history)
	level := services.ConfidenceLevelFor(analytics.PredictabilityScore / 100)
	return c.JSON(analyticsView{
		AnalyticsData:   analytics,
		CycleCount:      len(history.CycleLengths),
		ConfidenceLevel: level,
		ConfidenceLabel: translateMessage(currentMessages(c), "confidence."+string(level)),
	})
}
