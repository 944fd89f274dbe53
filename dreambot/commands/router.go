package commands

import (
	"context"
	"log/slog"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/access"
	"github.com/prd11/dream11-bot/dreambot/handlers"
	"github.com/prd11/dream11-bot/dreambot/utils"
)

type prefixCommand struct {
	name      string
	adminOnly bool
	handler   handlers.PrefixHandler
}

// Router dispatches prefix commands. Every command passes the per-minute
// budget, the admin gate and its cooldown before it runs.
type Router struct {
	b        *dreambot.Bot
	commands map[string]*prefixCommand
}

func NewRouter(b *dreambot.Bot) *Router {
	r := &Router{b: b, commands: map[string]*prefixCommand{}}

	r.Register("win", false, WinHandler(b))
	r.Register("points", true, PointsHandler(b))
	r.Register("leaderboard", false, LeaderboardHandler(b), "d11")
	r.Register("undo", true, UndoHandler(b))
	r.Register("clear", true, ClearHandler(b), "clearpoints")
	r.Register("mystats", false, MyStatsHandler(b))
	r.Register("about", false, AboutHandler(b))
	r.Register("adminlog", true, AdminLogHandler(b))
	r.Register("tdy", false, TodayHandler(b))
	r.Register("alerts", false, AlertsHandler(b))
	return r
}

// Register adds a command under name and its aliases. Aliases share the
// command's cooldown.
func (r *Router) Register(name string, adminOnly bool, h handlers.PrefixHandler, aliases ...string) {
	cmd := &prefixCommand{
		name:      name,
		adminOnly: adminOnly,
		handler:   handlers.WrapPrefixWithLogging(name, h),
	}
	r.commands[name] = cmd
	for _, alias := range aliases {
		r.commands[alias] = cmd
	}
}

// Dispatch runs the command in content and reports whether content was a
// known command at all.
func (r *Router) Dispatch(ctx context.Context, content string, e *handlers.PrefixEvent) bool {
	name, args, ok := handlers.ParsePrefix(r.b.Cfg.Bot.Prefix, content)
	if !ok {
		return false
	}
	cmd, ok := r.commands[name]
	if !ok {
		return false
	}
	e.Command = name
	e.Args = args

	if !r.b.Limiter.Allow(e.AuthorID) {
		reply(ctx, e, utils.EH.RateLimited())
		return true
	}
	if cmd.adminOnly && !r.b.IsAdmin(e.AuthorID) {
		reply(ctx, e, utils.EH.Error(utils.PermissionError, "This command is restricted to admin users only."))
		return true
	}
	if wait, ok := r.b.Limiter.Cooldown(e.AuthorID, cmd.name); !ok {
		reply(ctx, e, utils.EH.Cooldown(wait))
		return true
	}

	ctx = access.WithCaller(ctx, access.Member(e.AuthorID))
	if err := cmd.handler(ctx, e); err != nil {
		reply(ctx, e, utils.EH.Error(utils.SystemError, utils.GenericFailure))
	}
	return true
}

func reply(ctx context.Context, e *handlers.PrefixEvent, msg discord.MessageCreate) {
	if err := e.Reply(ctx, msg); err != nil {
		slog.Error("Failed to send reply",
			slog.String("type", "cmd"),
			slog.String("name", e.Command),
			slog.String("channel_id", e.ChannelID.String()),
			slog.Any("error", err))
	}
}

type channelReplier struct {
	client    bot.Client
	channelID snowflake.ID
	messageID snowflake.ID
}

func (c channelReplier) Reply(ctx context.Context, msg discord.MessageCreate) error {
	msg.MessageReference = &discord.MessageReference{
		MessageID:       &c.messageID,
		ChannelID:       &c.channelID,
		FailIfNotExists: false,
	}
	msg.AllowedMentions = &discord.AllowedMentions{RepliedUser: false}
	_, err := c.client.Rest().CreateMessage(c.channelID, msg, rest.WithCtx(ctx))
	return err
}

// MessageListener feeds every human message to the router.
func MessageListener(r *Router) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.MessageCreate) {
		author := e.Message.Author
		if author.Bot || author.System {
			return
		}

		ev := &handlers.PrefixEvent{
			Replier: channelReplier{
				client:    e.Client(),
				channelID: e.ChannelID,
				messageID: e.MessageID,
			},
			AuthorID:   author.ID,
			AuthorName: author.Username,
			GuildID:    e.GuildID,
			ChannelID:  e.ChannelID,
			MessageID:  e.MessageID,
		}
		go r.Dispatch(context.Background(), e.Message.Content, ev)
	})
}
