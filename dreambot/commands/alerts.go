package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/access"
	"github.com/prd11/dream11-bot/dreambot/config"
	"github.com/prd11/dream11-bot/dreambot/database/repositories"
	"github.com/prd11/dream11-bot/dreambot/handlers"
	"github.com/prd11/dream11-bot/dreambot/utils"
)

var Alerts = discord.SlashCommandCreate{
	Name:        "alerts",
	Description: "Show or change your match start DM alerts",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionBool{
			Name:        "enabled",
			Description: "Turn alerts on or off. Leave empty to see the current setting",
			Required:    false,
		},
	},
}

// alertStatus reads the caller's own preference. No row means disabled.
func alertStatus(ctx context.Context, b *dreambot.Bot) (bool, error) {
	caller, err := access.CallerFrom(ctx)
	if err != nil {
		return false, err
	}
	pref, err := b.Alerts.Get(ctx, caller, caller.ID)
	if repositories.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return pref.Enabled, nil
}

// setAlerts writes the caller's own preference.
func setAlerts(ctx context.Context, b *dreambot.Bot, enabled bool) error {
	caller, err := access.CallerFrom(ctx)
	if err != nil {
		return err
	}
	_, err = b.Alerts.Upsert(ctx, caller, caller.ID, enabled)
	return err
}

func alertsText(b *dreambot.Bot, enabled bool) string {
	if enabled {
		return fmt.Sprintf("Match alerts are **on**. You'll get a DM %d minutes before each match.", b.Cfg.Notifier.LeadMinutes)
	}
	return "Match alerts are **off**."
}

// AlertsHandler handles `!alerts [on|off]`.
func AlertsHandler(b *dreambot.Bot) handlers.PrefixHandler {
	return func(ctx context.Context, e *handlers.PrefixEvent) error {
		if len(e.Args) == 0 {
			enabled, err := alertStatus(ctx, b)
			if err != nil {
				return err
			}
			return e.Reply(ctx, utils.EH.Info(alertsText(b, enabled)))
		}

		var enabled bool
		switch strings.ToLower(e.Args[0]) {
		case "on", "enable", "yes":
			enabled = true
		case "off", "disable", "no":
		default:
			return usage(ctx, e, b.Cfg.Bot.Prefix, "alerts [on|off]")
		}

		if err := setAlerts(ctx, b, enabled); err != nil {
			return err
		}
		return e.Reply(ctx, utils.EH.Success(alertsText(b, enabled)))
	}
}

func AlertsSlashHandler(b *dreambot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()
		ctx = access.WithCaller(ctx, access.Member(e.User().ID))

		enabled, set := e.SlashCommandInteractionData().OptBool("enabled")
		if !set {
			current, err := alertStatus(ctx, b)
			if err != nil {
				return utils.EH.CreateErrorEmbed(e, utils.GenericFailure)
			}
			return utils.EH.CreateInfoEmbed(e, alertsText(b, current))
		}

		if err := setAlerts(ctx, b, enabled); err != nil {
			return utils.EH.CreateErrorEmbed(e, utils.GenericFailure)
		}
		return utils.EH.CreateSuccessEmbed(e, alertsText(b, enabled))
	}
}
