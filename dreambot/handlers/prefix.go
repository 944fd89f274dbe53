package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// Replier answers in the channel a prefix command came from.
type Replier interface {
	Reply(ctx context.Context, msg discord.MessageCreate) error
}

// PrefixEvent is a message that invoked a prefix command.
type PrefixEvent struct {
	Replier

	AuthorID   snowflake.ID
	AuthorName string
	GuildID    *snowflake.ID
	ChannelID  snowflake.ID
	MessageID  snowflake.ID

	// Command is the invoked name without prefix, Args the remaining fields.
	Command string
	Args    []string
}

type PrefixHandler func(ctx context.Context, e *PrefixEvent) error

// ParsePrefix splits content into command and arguments. ok is false when
// content does not start with prefix.
func ParsePrefix(prefix, content string) (command string, args []string, ok bool) {
	content = strings.TrimSpace(content)
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// ErrLateReply is returned for replies attempted after the command's run ended.
var ErrLateReply = errors.New("command already finished, reply dropped")

// timelyReplier drops replies once the command's run context is done.
type timelyReplier struct {
	next Replier
	run  context.Context
	name string
}

func (r timelyReplier) Reply(ctx context.Context, msg discord.MessageCreate) error {
	if r.run.Err() != nil {
		slog.Warn("Dropped late reply",
			slog.String("type", "cmd"),
			slog.String("name", r.name))
		return ErrLateReply
	}
	return r.next.Reply(ctx, msg)
}

// WrapPrefixWithLogging wraps a prefix command handler with logging functionality
func WrapPrefixWithLogging(name string, h PrefixHandler) PrefixHandler {
	return func(ctx context.Context, e *PrefixEvent) error {
		inv := invocation{
			kind:      "prefix",
			name:      name,
			userID:    e.AuthorID,
			userName:  e.AuthorName,
			guildID:   e.GuildID,
			channelID: e.ChannelID,
		}
		return inv.run(ctx, func(ctx context.Context) error {
			guarded := *e
			guarded.Replier = timelyReplier{next: e.Replier, run: ctx, name: name}
			return h(ctx, &guarded)
		})
	}
}
