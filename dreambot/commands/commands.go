package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/commands/system"
	"github.com/prd11/dream11-bot/dreambot/handlers"
)

var Commands = []discord.ApplicationCommandCreate{
	Leaderboard,
	Alerts,
}

func init() {
	Commands = append(Commands, system.Commands...)
}

// Register wires the slash commands into h.
func Register(h *handler.Mux, b *dreambot.Bot) {
	h.Command("/version", system.VersionHandler(b))
	h.Command("/leaderboard", handlers.WrapWithLogging("leaderboard", LeaderboardSlashHandler(b)))
	h.Command("/alerts", handlers.WrapWithLogging("alerts", AlertsSlashHandler(b)))
}
