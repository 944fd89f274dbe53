package commands

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/handlers"
	"github.com/prd11/dream11-bot/dreambot/utils"
)

// TodayHandler handles `!tdy`. "Today" is the schedule's time zone day.
func TodayHandler(b *dreambot.Bot) handlers.PrefixHandler {
	return func(ctx context.Context, e *handlers.PrefixEvent) error {
		matches := b.Schedule.On(b.Now())
		return e.Reply(ctx, discord.MessageCreate{Embeds: []discord.Embed{utils.TodayEmbed(matches)}})
	}
}
