package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ourday/rsvp/internal/config"
	"github.com/ourday/rsvp/internal/logger"
)

// Provider names accepted in email.provider
const (
	ProviderEmailJS  = "emailjs"
	ProviderGmail    = "gmail"
	ProviderTelegram = "telegram"
	ProviderLog      = "log"
)

// NewSender builds the Sender selected by cfg.Provider
func NewSender(ctx context.Context, cfg config.EmailConfig, log *logger.Logger) (Sender, error) {
	switch cfg.Provider {
	case ProviderEmailJS, "":
		return NewEmailJSSender(EmailJSConfig{
			BaseURL:    cfg.EmailJS.BaseURL,
			ServiceID:  cfg.EmailJS.ServiceID,
			TemplateID: cfg.EmailJS.TemplateID,
			PublicKey:  cfg.EmailJS.PublicKey,
			PrivateKey: cfg.EmailJS.PrivateKey,
			Origin:     cfg.EmailJS.Origin,
			HTTPClient: &http.Client{},
		})
	case ProviderGmail:
		return NewGmailSender(ctx, GmailConfig{
			CredentialsJSON: cfg.Gmail.CredentialsJSON,
			ClientID:        cfg.Gmail.ClientID,
			ClientSecret:    cfg.Gmail.ClientSecret,
			RefreshToken:    cfg.Gmail.RefreshToken,
			SenderAddress:   cfg.Gmail.SenderAddress,
			SenderName:      cfg.Gmail.SenderName,
		})
	case ProviderTelegram:
		return NewTelegramSender(TelegramConfig{
			Token:     cfg.Telegram.Token,
			ChatID:    cfg.Telegram.ChatID,
			ServerURL: cfg.Telegram.ServerURL,
		})
	case ProviderLog:
		return NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
