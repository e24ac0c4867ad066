package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.LanguageMiddleware)

	pin := api.Group("/pin")
	pin.Post("/unlock", handler.UnlockPin)
	pin.Post("", handler.PinLockRequired, handler.SetPin)
	pin.Delete("", handler.PinLockRequired, handler.DisablePin)

	entries := api.Group("/entries", handler.PinLockRequired)
	entries.Get("", handler.GetEntries)
	entries.Post("", handler.CreateEntry)
	entries.Delete("/:id", handler.DeleteEntry)

	api.Get("/prediction", handler.PinLockRequired, handler.GetPrediction)
	api.Get("/fertility", handler.PinLockRequired, handler.GetFertility)
	api.Get("/analytics", handler.PinLockRequired, handler.GetAnalytics)

	preferences := api.Group("/preferences", handler.PinLockRequired)
	preferences.Get("", handler.GetPreferences)
	preferences.Put("", handler.UpdatePreferences)

	export := api.Group("/export", handler.PinLockRequired)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)

	importGroup := api.Group("/import", handler.PinLockRequired)
	importGroup.Post("/json", handler.ImportJSON)
	importGroup.Post("/csv", handler.ImportCSV)
}
