package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclecast/internal/config"
	"github.com/terraincognita07/cyclecast/internal/db"
	"github.com/terraincognita07/cyclecast/internal/logger"
	"github.com/terraincognita07/cyclecast/internal/services"
	"gorm.io/gorm"
)

type appRuntime struct {
	config   config.Config
	location *time.Location
}

type rootOptions struct {
	configFile string
	rt         appRuntime
}

func newRootCommand() *cobra.Command {
	options := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "cyclecast",
		Short:         "Cycle tracking with period, ovulation and fertile window predictions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadRuntime(options.configFile)
			if err != nil {
				return err
			}
			options.rt = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), options.rt)
		},
	}
	rootCmd.PersistentFlags().StringVar(&options.configFile, "config", "", "path to a YAML config file (default ./cyclecast.yaml)")

	rootCmd.AddCommand(
		newServeCommand(options),
		newPredictCommand(options),
		newAnalyticsCommand(options),
		newExportCommand(options),
		newImportCommand(options),
		newResetPinCommand(options),
	)
	return rootCmd
}

func loadRuntime(configFile string) (appRuntime, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return appRuntime{}, err
	}
	if err := cfg.Validate(); err != nil {
		return appRuntime{}, err
	}
	if err := logger.Initialize(cfg.Log.Level, cfg.Log.Pretty); err != nil {
		return appRuntime{}, fmt.Errorf("logger init failed: %w", err)
	}

	location, err := cfg.Location()
	if err != nil {
		return appRuntime{}, err
	}
	time.Local = location

	return appRuntime{config: cfg, location: location}, nil
}

func openDatabase(rt appRuntime) (*gorm.DB, *db.Repositories, error) {
	database, err := db.OpenSQLite(rt.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, db.NewRepositories(database), nil
}

func newHistoryService(rt appRuntime, repositories *db.Repositories) *services.HistoryService {
	return services.NewHistoryService(repositories.CycleEntries, repositories.Preferences, rt.location)
}
