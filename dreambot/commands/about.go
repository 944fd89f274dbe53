package commands

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/handlers"
	"github.com/prd11/dream11-bot/dreambot/utils"
)

func AboutHandler(b *dreambot.Bot) handlers.PrefixHandler {
	return func(ctx context.Context, e *handlers.PrefixEvent) error {
		embed := utils.AboutEmbed(b.Cfg.Bot.Prefix)
		footer := "Version " + b.Version
		if period := b.Limiter.CooldownPeriod(); period > 0 {
			footer += fmt.Sprintf(" | Commands cool down for %s", period)
		}
		embed.Footer = &discord.EmbedFooter{Text: footer}
		return e.Reply(ctx, discord.MessageCreate{Embeds: []discord.Embed{embed}})
	}
}
