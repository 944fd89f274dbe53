package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/prd11/dream11-bot/dreambot/config"
)

// commandTimeout bounds a single command run.
var commandTimeout = config.CommandExecutionTimeout

type invocation struct {
	kind      string
	name      string
	userID    snowflake.ID
	userName  string
	guildID   *snowflake.ID
	channelID snowflake.ID
}

func (i invocation) attrs() []any {
	return []any{
		slog.String("type", "cmd"),
		slog.String("kind", i.kind),
		slog.String("name", i.name),
		slog.String("user_id", i.userID.String()),
		slog.String("user_name", i.userName),
	}
}

// run executes fn and logs start, completion, slowness, failure or timeout.
// A timed out command keeps running in the background; its result is dropped.
func (i invocation) run(ctx context.Context, fn func(context.Context) error) error {
	start := time.Now()

	guild := "dm"
	if i.guildID != nil {
		guild = i.guildID.String()
	}
	slog.Info("Command started", append(i.attrs(),
		slog.String("guild_id", guild),
		slog.String("channel_id", i.channelID.String()),
	)...)

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		attrs := append(i.attrs(), slog.Duration("took", time.Since(start)))
		switch {
		case err != nil:
			slog.Error("Command failed", append(attrs,
				slog.Any("error", err),
				slog.String("status", "failed"),
			)...)
		case time.Since(start) > config.SlowCommandThreshold:
			slog.Warn("Command executed slowly", append(attrs,
				slog.String("status", "slow"),
			)...)
		default:
			slog.Info("Command completed", append(attrs,
				slog.String("status", "success"),
			)...)
		}
		return err

	case <-ctx.Done():
		slog.Error("Command timed out", append(i.attrs(),
			slog.String("status", "timeout"),
			slog.Duration("timeout", commandTimeout),
		)...)
		return fmt.Errorf("command %s timed out after %s", i.name, commandTimeout)
	}
}

// WrapWithLogging wraps a slash command handler with logging functionality
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		inv := invocation{
			kind:      "slash",
			name:      name,
			userID:    e.User().ID,
			userName:  e.User().Username,
			guildID:   e.GuildID(),
			channelID: e.ChannelID(),
		}
		return inv.run(context.Background(), func(context.Context) error {
			return h(e)
		})
	}
}
