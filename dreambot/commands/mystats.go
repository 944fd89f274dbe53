package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/database/repositories"
	"github.com/prd11/dream11-bot/dreambot/handlers"
	"github.com/prd11/dream11-bot/dreambot/ledger"
	"github.com/prd11/dream11-bot/dreambot/utils"
)

const maxSuggestions = 3

// MyStatsHandler handles `!mystats [username]`. Without a name the caller is
// looked up by mention first, then by Discord username.
func MyStatsHandler(b *dreambot.Bot) handlers.PrefixHandler {
	return func(ctx context.Context, e *handlers.PrefixEvent) error {
		candidates := []string{"<@" + e.AuthorID.String() + ">", e.AuthorName}
		if len(e.Args) > 0 {
			candidates = []string{e.Args[0]}
		}

		for _, name := range candidates {
			stats, err := b.Ledger.Stats(ctx, name)
			switch {
			case err == nil:
				return e.Reply(ctx, discord.MessageCreate{Embeds: []discord.Embed{utils.StatsEmbed(stats)}})
			case repositories.IsNotFound(err):
				continue
			case ledger.IsValidation(err) && len(e.Args) == 0:
				// Discord usernames may contain characters plain names can't
				continue
			default:
				return replyValidation(ctx, e, err)
			}
		}

		lookup := candidates[len(candidates)-1]
		msg := fmt.Sprintf("No points recorded for %s yet.", utils.DisplayName(strings.TrimPrefix(lookup, "@")))
		suggestions, err := b.Ledger.Suggest(ctx, strings.TrimPrefix(lookup, "@"), maxSuggestions)
		if err != nil {
			return err
		}
		if len(suggestions) > 0 {
			names := make([]string, len(suggestions))
			for i, s := range suggestions {
				names[i] = utils.DisplayName(s)
			}
			msg += " Did you mean " + strings.Join(names, ", ") + "?"
		}
		return e.Reply(ctx, utils.EH.Error(utils.UserError, msg))
	}
}
