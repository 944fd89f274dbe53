package utils

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/prd11/dream11-bot/dreambot/config"
)

// ResponseHandler builds the bot's standard replies.
type ResponseHandler struct{}

var EH = &ResponseHandler{}

type ErrorType int

const (
	// UserError - bad arguments, unknown names, duplicate wins
	UserError ErrorType = iota
	// SystemError - database or network failures
	SystemError
	// PermissionError - admin only commands
	PermissionError
	// CooldownError - per command cooldown still running
	CooldownError
	// RateLimitError - per minute budget spent
	RateLimitError
)

const (
	SuccessPrefix   = "✅"
	FailurePrefix   = "❌"
	CooldownPrefix  = "⏳"
	RateLimitPrefix = "⚠️"
)

const GenericFailure = "An unexpected error occurred. Please try again later."

func getErrorPrefix(errorType ErrorType) string {
	switch errorType {
	case CooldownError:
		return CooldownPrefix
	case RateLimitError:
		return RateLimitPrefix
	default:
		return FailurePrefix
	}
}

func getErrorColor(errorType ErrorType) int {
	switch errorType {
	case UserError, CooldownError, RateLimitError:
		return config.WarningColor
	default:
		return config.ErrorColor
	}
}

// Error is a failure reply for prefix commands.
func (h *ResponseHandler) Error(errorType ErrorType, message string) discord.MessageCreate {
	return discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: getErrorPrefix(errorType) + " " + message,
			Color:       getErrorColor(errorType),
		}},
	}
}

func (h *ResponseHandler) Success(message string) discord.MessageCreate {
	return discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: SuccessPrefix + " " + message,
			Color:       config.SuccessColor,
		}},
	}
}

func (h *ResponseHandler) Info(message string) discord.MessageCreate {
	return discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.InfoColor,
		}},
	}
}

func (h *ResponseHandler) Cooldown(wait time.Duration) discord.MessageCreate {
	secs := int(wait.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return h.Error(CooldownError, fmt.Sprintf("Please wait %d seconds before using this command again.", secs))
}

func (h *ResponseHandler) RateLimited() discord.MessageCreate {
	return h.Error(RateLimitError, "You're using commands too quickly. Please wait a moment.")
}

// CreateErrorEmbed creates a standard error embed for command events
func (h *ResponseHandler) CreateErrorEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: FailurePrefix + " " + message,
			Color:       config.ErrorColor,
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}

// CreateSuccessEmbed creates a standard success embed for command events
func (h *ResponseHandler) CreateSuccessEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: SuccessPrefix + " " + message,
			Color:       config.SuccessColor,
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}

// CreateInfoEmbed creates a standard info embed for command events
func (h *ResponseHandler) CreateInfoEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.InfoColor,
		}},
	})
}

func Ptr[T any](v T) *T {
	return &v
}
