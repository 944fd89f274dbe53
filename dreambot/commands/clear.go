package commands

import (
	"context"

	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/handlers"
	"github.com/prd11/dream11-bot/dreambot/utils"
)

func ClearHandler(b *dreambot.Bot) handlers.PrefixHandler {
	return func(ctx context.Context, e *handlers.PrefixEvent) error {
		location, err := b.Ledger.Clear(ctx)
		if err != nil {
			return err
		}

		msg := "All Dream11 points have been cleared successfully."
		if location != "" {
			msg += "\nSeason archived to `" + location + "`."
		}
		return e.Reply(ctx, utils.EH.Success(msg))
	}
}
