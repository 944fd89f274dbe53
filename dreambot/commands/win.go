package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/database/repositories"
	"github.com/prd11/dream11-bot/dreambot/handlers"
	"github.com/prd11/dream11-bot/dreambot/ledger"
	"github.com/prd11/dream11-bot/dreambot/utils"
)

// WinHandler handles `!win <username> <match_number>`. Members may only
// record wins for today's matches; admins for any match.
func WinHandler(b *dreambot.Bot) handlers.PrefixHandler {
	return func(ctx context.Context, e *handlers.PrefixEvent) error {
		if len(e.Args) < 2 {
			return usage(ctx, e, b.Cfg.Bot.Prefix, "win <username> <match_number>")
		}

		match, err := strconv.Atoi(e.Args[1])
		if err != nil {
			return e.Reply(ctx, utils.EH.Error(utils.UserError, "Please provide a valid match number."))
		}

		if err := b.Ledger.ValidateMatch(match); err != nil {
			return replyValidation(ctx, e, err)
		}
		if !b.IsAdmin(e.AuthorID) && !b.Schedule.IsOn(match, b.Now()) {
			return e.Reply(ctx, utils.EH.Error(utils.PermissionError,
				"You can only record points for matches scheduled for today. Admins can record points for any match."))
		}

		entry, err := b.Ledger.RecordWin(ctx, e.Args[0], match, actor(e))
		switch {
		case repositories.IsConflict(err):
			name, _ := ledger.NormalizeUsername(e.Args[0])
			return e.Reply(ctx, utils.EH.Error(utils.UserError,
				fmt.Sprintf("%s already has the win for Match %d.", utils.DisplayName(name), match)))
		case err != nil:
			return replyValidation(ctx, e, err)
		}

		return e.Reply(ctx, utils.EH.Success(
			fmt.Sprintf("Added 1 point to %s for winning Match %d", utils.DisplayName(entry.Username), entry.MatchNumber)))
	}
}
