package api

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/cyclecast/internal/codec"
	"github.com/terraincognita07/cyclecast/internal/models"
	"github.com/terraincognita07/cyclecast/internal/services"
)

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	entries, status, message := handler.exportEntries(c)
	if status != 0 {
		return apiError(c, status, message)
	}
	now := handler.now().In(handler.location)

	var output bytes.Buffer
	if err := codec.EncodeJSON(&output, entries, now); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(now, "json"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	entries, status, message := handler.exportEntries(c)
	if status != 0 {
		return apiError(c, status, message)
	}
	now := handler.now().In(handler.location)

	var output bytes.Buffer
	if err := codec.EncodeCSV(&output, entries); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(now, "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) exportEntries(c *fiber.Ctx) ([]models.CycleEntry, int, string) {
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"))
	switch {
	case errors.Is(err, services.ErrExportFromDateInvalid):
		return nil, fiber.StatusBadRequest, "invalid from date"
	case errors.Is(err, services.ErrExportToDateInvalid):
		return nil, fiber.StatusBadRequest, "invalid to date"
	case errors.Is(err, services.ErrExportRangeInvalid):
		return nil, fiber.StatusBadRequest, "invalid range"
	case err != nil:
		return nil, fiber.StatusBadRequest, "invalid range"
	}

	entries, err := handler.exportService.Entries(from, to)
	if err != nil {
		log.Error().Err(err).Str("component", "api").Msg("load export entries")
		return nil, fiber.StatusInternalServerError, "failed to fetch entries"
	}
	return entries, 0, ""
}

func (handler *Handler) ImportJSON(c *fiber.Ctx) error {
	entries, err := codec.DecodeJSON(bytes.NewReader(c.Body()))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	return handler.replaceEntries(c, entries)
}

func (handler *Handler) ImportCSV(c *fiber.Ctx) error {
	entries, err := codec.DecodeCSV(bytes.NewReader(c.Body()))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	return handler.replaceEntries(c, entries)
}

func (handler *Handler) replaceEntries(c *fiber.Ctx, entries []models.CycleEntry) error {
	history, err := handler.historyService.ReplaceEntries(entries)
	switch {
	case errors.Is(err, services.ErrEntryExists):
		return localizedAPIError(c, fiber.StatusConflict, "duplicate period start", "error.entry_exists")
	case errors.Is(err, services.ErrEntryIDExists):
		return localizedAPIError(c, fiber.StatusConflict, "duplicate entry id", "error.entry_id_exists")
	case errors.Is(err, services.ErrNotesTooLong):
		return localizedAPIError(c, fiber.StatusBadRequest, "notes too long", "error.notes_too_long")
	case err != nil:
		log.Error().Err(err).Str("component", "api").Msg("import entries")
		return apiError(c, fiber.StatusInternalServerError, "failed to import entries")
	}

	log.Info().Str("component", "api").Int("entries", len(entries)).Msg("history imported")
	return c.JSON(fiber.Map{
		"imported": len(entries),
		"history":  buildHistoryView(history),
	})
}
