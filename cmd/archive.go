package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/archive"
	"github.com/spf13/cobra"
)

var archiveOut string

var archiveCMD = &cobra.Command{
	Use:   "archive",
	Short: "Snapshot standings and match results to Spaces or a local file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		svc, err := dreambot.NewLedger(ctx, *cfg, db)
		if err != nil {
			return err
		}
		snap, err := svc.Snapshot(ctx)
		if err != nil {
			return err
		}

		if archiveOut != "" {
			body, err := archive.Encode(snap)
			if err != nil {
				return err
			}
			if err = os.WriteFile(archiveOut, body, 0o644); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot written to %s\n", archiveOut)
			return nil
		}

		if !cfg.Archive.Enabled() {
			return errors.New("archive settings are missing; set SPACES_* or pass --out")
		}
		spaces, err := archive.NewSpaces(ctx,
			cfg.Archive.Key,
			cfg.Archive.Secret,
			cfg.Archive.Region,
			cfg.Archive.Bucket,
			cfg.Archive.Prefix,
		)
		if err != nil {
			return err
		}
		key, err := spaces.Archive(ctx, snap)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Snapshot uploaded to %s/%s\n", spaces.Bucket(), key)
		return nil
	},
}

func init() {
	archiveCMD.Flags().StringVarP(&archiveOut, "out", "o", "", "write the snapshot to this file instead of uploading")
	rootCmd.AddCommand(archiveCMD)
}
