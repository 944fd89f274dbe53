// Package cmd is the dreamctl operator CLI.
package cmd

import (
	"context"
	"log/slog"

	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/database"
	"github.com/prd11/dream11-bot/dreambot/logger"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "dreamctl",
	Short:         "Operator tools for the Dream11 points bot",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	slog.SetDefault(slog.New(logger.NewHandler(nil)))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", slog.String("type", "cmd"), slog.Any("error", err))
		return 1
	}
	return 0
}

// loadConfig reads --config and raises the log level if the file asks for it.
// Only the database settings are needed, so Validate is not applied.
func loadConfig() (*dreambot.Config, error) {
	cfg, err := dreambot.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.HandlerOptions())))
	return cfg, nil
}

func openDatabase(ctx context.Context) (*dreambot.Config, *database.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := dreambot.OpenDatabase(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
