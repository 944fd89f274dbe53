package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the bot's tables, triggers and policies",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		version, err := db.SchemaVersion(cmd.Context())
		if err != nil {
			return err
		}
		slog.Info("Migration completed successfully",
			slog.String("type", "sys"),
			slog.String("schema_version", version))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCMD)
}
