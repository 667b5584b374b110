package transport

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Telegram delivers outbound messages via the Bot API.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	logger zerolog.Logger
}

// New authorizes against the Bot API with the given token.
func New(token string) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("initializing Telegram bot: %w", err)
	}

	logger := log.With().Str("component", "telegram").Logger()
	logger.Info().Str("username", bot.Self.UserName).Msg("Authorized on Telegram")

	return &Telegram{bot: bot, logger: logger}, nil
}

// Send delivers text to a chat. Delivery failures are returned for the
// caller to log; they are never retried.
func (t *Telegram) Send(_ context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}

	t.logger.Debug().Int64("chat_id", chatID).Int("length", len(text)).Msg("Message sent")
	return nil
}
