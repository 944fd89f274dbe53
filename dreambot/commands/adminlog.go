package commands

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/handlers"
	"github.com/prd11/dream11-bot/dreambot/utils"
)

func AdminLogHandler(b *dreambot.Bot) handlers.PrefixHandler {
	return func(ctx context.Context, e *handlers.PrefixEvent) error {
		results, err := b.Ledger.MatchLog(ctx)
		if err != nil {
			return err
		}
		return e.Reply(ctx, discord.MessageCreate{Embeds: []discord.Embed{utils.MatchLogEmbed(results)}})
	}
}
