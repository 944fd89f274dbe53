package commands

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/config"
	"github.com/prd11/dream11-bot/dreambot/handlers"
	"github.com/prd11/dream11-bot/dreambot/utils"
)

var Leaderboard = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "Show the Dream11 points leaderboard",
}

// LeaderboardHandler handles `!leaderboard` and `!d11`.
func LeaderboardHandler(b *dreambot.Bot) handlers.PrefixHandler {
	return func(ctx context.Context, e *handlers.PrefixEvent) error {
		standings, err := b.Ledger.Leaderboard(ctx)
		if err != nil {
			return err
		}
		return e.Reply(ctx, discord.MessageCreate{Embeds: []discord.Embed{utils.LeaderboardEmbed(standings)}})
	}
}

func LeaderboardSlashHandler(b *dreambot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		standings, err := b.Ledger.Leaderboard(ctx)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, utils.GenericFailure)
		}
		if len(standings) == 0 {
			return utils.EH.CreateInfoEmbed(e, "No points recorded yet!")
		}

		pageSize := config.LeaderboardPageSize
		totalPages := (len(standings) + pageSize - 1) / pageSize

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				utils.LeaderboardPage(embed, standings, page, pageSize)
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

