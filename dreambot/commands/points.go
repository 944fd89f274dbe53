package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/handlers"
	"github.com/prd11/dream11-bot/dreambot/utils"
)

// PointsHandler handles `!points <username> <points>`, a manual adjustment.
func PointsHandler(b *dreambot.Bot) handlers.PrefixHandler {
	return func(ctx context.Context, e *handlers.PrefixEvent) error {
		if len(e.Args) < 2 {
			return usage(ctx, e, b.Cfg.Bot.Prefix, "points <username> <points>")
		}

		delta, err := strconv.ParseInt(e.Args[1], 10, 64)
		if err != nil {
			return e.Reply(ctx, utils.EH.Error(utils.UserError, "Please provide a whole number of points, e.g. `5` or `-3`."))
		}

		entry, err := b.Ledger.AdjustPoints(ctx, e.Args[0], delta, actor(e))
		if err != nil {
			return replyValidation(ctx, e, err)
		}

		verb, to := "Added", "to"
		if delta < 0 {
			verb, to, delta = "Removed", "from", -delta
		}
		return e.Reply(ctx, utils.EH.Success(
			fmt.Sprintf("%s %s %s %s", verb, utils.FormatPoints(delta), to, utils.DisplayName(entry.Username))))
	}
}
