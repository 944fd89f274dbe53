package notifier

import (
	"context"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

// RestSender sends DMs through the Discord REST API.
type RestSender struct {
	Client bot.Client
}

func (s RestSender) SendDM(ctx context.Context, userID snowflake.ID, msg discord.MessageCreate) error {
	ch, err := s.Client.Rest().CreateDMChannel(userID, rest.WithCtx(ctx))
	if err != nil {
		return err
	}
	_, err = s.Client.Rest().CreateMessage(ch.ID(), msg, rest.WithCtx(ctx))
	return err
}
