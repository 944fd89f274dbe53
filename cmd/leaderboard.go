package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/prd11/dream11-bot/dreambot"
	"github.com/spf13/cobra"
)

var leaderboardCMD = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the current standings",
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
		standings, err := svc.Leaderboard(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(standings) == 0 {
			fmt.Fprintln(out, "No points recorded yet!")
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tUSERNAME\tPOINTS")
		for _, s := range standings {
			fmt.Fprintf(w, "%d\t%s\t%d\n", s.Rank, s.Username, s.Points)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(leaderboardCMD)
}
