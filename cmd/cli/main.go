package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fobe-ops/roster/cmd/cli/commands"
	"github.com/fobe-ops/roster/internal/config"
	"github.com/fobe-ops/roster/pkg/postgres"
	"github.com/fobe-ops/roster/pkg/utils/logging"
)

var app *commands.AppContext

func main() {
	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "FOBE roster CLI - Generate seasonal shift schedules",
		Long:  `A CLI tool for generating and storing seasonal shift schedules for the Greystones store, the Beach Shop and the boat.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	app = &commands.AppContext{}
	rootCmd.AddCommand(commands.GenerateScheduleCmd(app))
	rootCmd.AddCommand(commands.ValidateRequestCmd(app))
	rootCmd.AddCommand(commands.CalendarCmd(app))
	rootCmd.AddCommand(commands.ListSchedulesCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger, configuration and, when configured, the
// database connection.
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Cfg, err = config.LoadApp()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger, err = logging.InitLogger(app.Cfg.LogDir, app.Cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if app.Cfg.DatabaseURL == "" {
		app.Logger.Debug("No database configured, running in memory")
		return nil
	}

	app.Logger.Debug("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Logger.Debug("Database ready", zap.String("url", app.Cfg.DatabaseURL))

	app.Store = database
	return nil
}
