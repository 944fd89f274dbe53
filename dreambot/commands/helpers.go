package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/prd11/dream11-bot/dreambot/database/repositories"
	"github.com/prd11/dream11-bot/dreambot/handlers"
	"github.com/prd11/dream11-bot/dreambot/ledger"
	"github.com/prd11/dream11-bot/dreambot/utils"
)

func actor(e *handlers.PrefixEvent) repositories.Actor {
	return repositories.Actor{Name: e.AuthorName, ID: e.AuthorID}
}

func usage(ctx context.Context, e *handlers.PrefixEvent, prefix, text string) error {
	return e.Reply(ctx, utils.EH.Error(utils.UserError, fmt.Sprintf("Usage: `%s%s`", prefix, text)))
}

// replyValidation answers rejected input. Any other error is returned so the
// router can log it and send the generic failure.
func replyValidation(ctx context.Context, e *handlers.PrefixEvent, err error) error {
	var ve *ledger.ValidationError
	if errors.As(err, &ve) {
		return e.Reply(ctx, utils.EH.Error(utils.UserError, fmt.Sprintf("Invalid %s: %s.", ve.Field, ve.Message)))
	}
	return err
}
