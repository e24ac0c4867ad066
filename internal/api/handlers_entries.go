package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/cyclecast/internal/services"
)

func (handler *Handler) GetEntries(c *fiber.Ctx) error {
	history, err := handler.historyService.LoadHistory()
	if err != nil {
		log.Error().Err(err).Str("component", "api").Msg("load history")
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}
	return c.JSON(buildHistoryView(history))
}

func (handler *Handler) CreateEntry(c *fiber.Ctx) error {
	input := entryInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	start, err := services.ParseDayInput(input.PeriodStart, handler.location)
	if err != nil {
		return localizedAPIError(c, fiber.StatusBadRequest, "invalid date", "error.invalid_date")
	}

	entry, history, err := handler.historyService.AddEntry(start, input.Notes)
	switch {
	case errors.Is(err, services.ErrNotesTooLong):
		return localizedAPIError(c, fiber.StatusBadRequest, "notes too long", "error.notes_too_long")
	case errors.Is(err, services.ErrEntryExists):
		return localizedAPIError(c, fiber.StatusConflict, "entry already exists", "error.entry_exists")
	case err != nil:
		log.Error().Err(err).Str("component", "api").Msg("create entry")
		return apiError(c, fiber.StatusInternalServerError, "failed to create entry")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"entry":   buildEntryView(entry),
		"history": buildHistoryView(history),
	})
}

func (handler *Handler) DeleteEntry(c *fiber.Ctx) error {
	history, err := handler.historyService.DeleteEntry(c.Params("id"))
	if errors.Is(err, services.ErrEntryNotFound) {
		return localizedAPIError(c, fiber.StatusNotFound, "entry not found", "error.entry_not_found")
	}
	if err != nil {
		log.Error().Err(err).Str("component", "api").Msg("delete entry")
		return apiError(c, fiber.StatusInternalServerError, "failed to delete entry")
	}
	return c.JSON(buildHistoryView(history))
}
