package api

import (
	"github.com/terraincognita07/cyclecast/internal/db"
	"github.com/terraincognita07/cyclecast/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.historyService = services.NewHistoryService(handler.repositories.CycleEntries, handler.repositories.Preferences, handler.location)
	handler.settingsService = services.NewSettingsService(handler.repositories.Preferences)
	handler.pinService = services.NewPinService(handler.repositories.Preferences, services.NewAttemptLimiter())
	handler.exportService = services.NewExportService(handler.historyService)
	return handler
}
