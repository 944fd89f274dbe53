package commands

import (
	"context"
	"fmt"

	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/database/models"
	"github.com/prd11/dream11-bot/dreambot/database/repositories"
	"github.com/prd11/dream11-bot/dreambot/handlers"
	"github.com/prd11/dream11-bot/dreambot/utils"
)

func UndoHandler(b *dreambot.Bot) handlers.PrefixHandler {
	return func(ctx context.Context, e *handlers.PrefixEvent) error {
		entry, err := b.Ledger.Undo(ctx)
		if repositories.IsNotFound(err) {
			return e.Reply(ctx, utils.EH.Error(utils.UserError, "No point history to undo."))
		}
		if err != nil {
			return err
		}

		what := "manual adjustment"
		if entry.Kind == models.HistoryKindWin {
			what = fmt.Sprintf("win in Match %d", entry.MatchNumber)
		}
		return e.Reply(ctx, utils.EH.Success(fmt.Sprintf("Undid %s for %s (%+d)",
			what, utils.DisplayName(entry.Username), entry.Points)))
	}
}
