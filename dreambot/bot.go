package dreambot

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/disgoorg/snowflake/v2"
	"github.com/prd11/dream11-bot/dreambot/access"
	"github.com/prd11/dream11-bot/dreambot/cooldown"
	"github.com/prd11/dream11-bot/dreambot/database"
	"github.com/prd11/dream11-bot/dreambot/database/repositories"
	"github.com/prd11/dream11-bot/dreambot/ledger"
	"github.com/prd11/dream11-bot/dreambot/schedule"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
		Admins:    access.NewAdmins(cfg.Bot.Admins...),
		Limiter: cooldown.New(
			cfg.Limits.MaxCommandsPerMinute,
			time.Duration(cfg.Limits.CommandCooldown)*time.Second,
		),
		Clock: time.Now,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string
	DB        *database.DB
	Ledger    *ledger.Service
	Alerts    repositories.AlertRepository
	Schedule  *schedule.Schedule
	Admins    access.Admins
	Limiter   *cooldown.Limiter
	Clock     func() time.Time
}

func (b *Bot) Now() time.Time {
	return b.Clock()
}

func (b *Bot) IsAdmin(id snowflake.ID) bool {
	return b.Admins.IsAdmin(id)
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(
			gateway.IntentGuilds,
			gateway.IntentGuildMessages,
			gateway.IntentDirectMessages,
			gateway.IntentMessageContent,
		)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Dream11 Bot is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("the leaderboard | "+b.Cfg.Bot.Prefix+"about"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}
