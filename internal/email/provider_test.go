package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourday/rsvp/internal/config"
	"github.com/ourday/rsvp/internal/logger"
)

func TestNewSender(t *testing.T) {
	ctx := context.Background()
	log := logger.Nop()

	t.Run("emailjs", func(t *testing.T) {
		cfg := config.EmailConfig{Provider: ProviderEmailJS}
		cfg.EmailJS.ServiceID = "service_v7t59c7"
		cfg.EmailJS.PublicKey = "pk"

		s, err := NewSender(ctx, cfg, log)
		require.NoError(t, err)
		assert.Equal(t, "emailjs", s.Name())
	})

	t.Run("emailjs without key", func(t *testing.T) {
		cfg := config.EmailConfig{Provider: ProviderEmailJS}
		cfg.EmailJS.ServiceID = "service_v7t59c7"

		_, err := NewSender(ctx, cfg, log)
		assert.Error(t, err)
	})

	t.Run("telegram", func(t *testing.T) {
		cfg := config.EmailConfig{Provider: ProviderTelegram}
		cfg.Telegram.Token = "123:abc"
		cfg.Telegram.ChatID = 7

		s, err := NewSender(ctx, cfg, log)
		require.NoError(t, err)
		assert.Equal(t, "telegram", s.Name())
	})

	t.Run("log", func(t *testing.T) {
		s, err := NewSender(ctx, config.EmailConfig{Provider: ProviderLog}, log)
		require.NoError(t, err)
		assert.Equal(t, "log", s.Name())
		assert.NoError(t, s.Send(ctx, Message{Subject: "x"}))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewSender(ctx, config.EmailConfig{Provider: "pigeon"}, log)
		assert.ErrorContains(t, err, `unknown email provider "pigeon"`)
	})
}
