package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclecast/internal/api"
	"github.com/terraincognita07/cyclecast/internal/db"
	"github.com/terraincognita07/cyclecast/internal/i18n"
	"github.com/terraincognita07/cyclecast/internal/services"
)

func newServeCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), options.rt)
		},
	}
}

func runServe(ctx context.Context, rt appRuntime) error {
	if err := rt.config.ValidateSecretKey(); err != nil {
		return err
	}

	database, repositories, err := openDatabase(rt)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(database); err != nil {
			log.Warn().Err(err).Msg("database close failed")
		}
	}()

	i18nManager, err := i18n.NewEmbeddedManager(rt.config.App.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(database, rt.config.Security.SecretKey, rt.location, i18nManager, rt.config.Server.CookieSecure)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	handler.WithSessionTTL(rt.config.Security.SessionTTL)

	app := newFiberApp(handler)

	reminders := services.NewReminderService(handler.HistoryService(), repositories.Preferences, reminderConfig(rt))
	lifecycleCtx, cancelLifecycle := context.WithCancel(ctx)
	defer cancelLifecycle()
	reminders.Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(lifecycleCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		if err := app.ShutdownWithTimeout(rt.config.Server.ShutdownTimeout); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().
		Str("port", rt.config.Server.Port).
		Str("db", rt.config.Database.Path).
		Str("tz", rt.location.String()).
		Msg("cyclecast listening")
	if err := app.Listen(":" + rt.config.Server.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newFiberApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "cyclecast",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func reminderConfig(rt appRuntime) services.ReminderConfig {
	reminders := rt.config.Reminders
	return services.ReminderConfig{
		BotToken:           reminders.TelegramBotToken,
		ChatID:             reminders.TelegramChatID,
		PeriodReminderDays: reminders.PeriodReminderDays,
		FertilityReminder:  reminders.FertilityReminder,
		Interval:           reminders.Interval,
	}
}
