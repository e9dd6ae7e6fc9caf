package email

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
)

// TelegramConfig holds the configuration for the Telegram sender.
type TelegramConfig struct {
	Token  string
	ChatID int64
	// ServerURL overrides the Bot API endpoint.
	ServerURL string
}

// TelegramSender delivers the plain-text notification to a Telegram chat,
// for couples who would rather be pinged than emailed.
type TelegramSender struct {
	bot    *bot.Bot
	chatID int64
}

// NewTelegramSender creates a TelegramSender. The bot is not polled for
// updates; it is only used to send messages.
func NewTelegramSender(cfg TelegramConfig) (*TelegramSender, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram: bot token is required")
	}
	if cfg.ChatID == 0 {
		return nil, fmt.Errorf("telegram: chat id is required")
	}

	opts := []bot.Option{bot.WithSkipGetMe()}
	if cfg.ServerURL != "" {
		opts = append(opts, bot.WithServerURL(cfg.ServerURL))
	}

	b, err := bot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("telegram: failed to create bot: %w", err)
	}

	return &TelegramSender{bot: b, chatID: cfg.ChatID}, nil
}

// Name implements Sender.
func (t *TelegramSender) Name() string { return "telegram" }

// Send posts the message's text body to the configured chat.
func (t *TelegramSender) Send(ctx context.Context, msg Message) error {
	text := msg.TextBody
	if text == "" {
		text = msg.Subject
	}

	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("telegram: failed to send message: %w", err)
	}
	return nil
}
