package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/cyclecast/internal/services"
)

func (handler *Handler) GetPreferences(c *fiber.Ctx) error {
	preferences, err := handler.settingsService.LoadPreferences()
	if err != nil {
		log.Error().Err(err).Str("component", "api").Msg("load preferences")
		return apiError(c, fiber.StatusInternalServerError, "failed to load preferences")
	}
	return c.JSON(preferences)
}

func (handler *Handler) UpdatePreferences(c *fiber.Ctx) error {
	update := services.PreferencesUpdate{}
	if err := c.BodyParser(&update); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	preferences, err := handler.settingsService.UpdatePreferences(update)
	switch {
	case errors.Is(err, services.ErrInvalidCycleLength):
		return apiError(c, fiber.StatusBadRequest, "invalid cycle length")
	case errors.Is(err, services.ErrSettingsWeekStartInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid week start day")
	case err != nil:
		log.Error().Err(err).Str("component", "api").Msg("update preferences")
		return apiError(c, fiber.StatusInternalServerError, "failed to update preferences")
	}
	return c.JSON(preferences)
}
