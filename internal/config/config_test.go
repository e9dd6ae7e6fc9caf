package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "emailjs", cfg.Email.Provider)
	assert.Equal(t, "service_v7t59c7", cfg.Email.EmailJS.ServiceID)
	assert.Empty(t, cfg.Email.EmailJS.TemplateID)
	assert.Equal(t, 20*time.Second, cfg.Email.Timeout)
	assert.Equal(t, "RSVP Form", cfg.Page.Heading)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5, cfg.Security.RateLimiting.Limit)
	assert.Equal(t, 15*time.Minute, cfg.Security.RateLimiting.Window)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("RSVP_SERVER_PORT", "9090")
	t.Setenv("RSVP_EMAIL_PROVIDER", "log")
	t.Setenv("RSVP_EMAIL_EMAILJS_PUBLIC_KEY", "pk_test")
	t.Setenv("RSVP_SECURITY_RATE_LIMITING_WINDOW", "2m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "log", cfg.Email.Provider)
	assert.Equal(t, "pk_test", cfg.Email.EmailJS.PublicKey)
	assert.Equal(t, 2*time.Minute, cfg.Security.RateLimiting.Window)
}

func TestLoad_SecretsFromEnvironment(t *testing.T) {
	t.Setenv("RSVP_EMAIL_GMAIL_CREDENTIALS_JSON", `{"type":"service_account"}`)
	t.Setenv("RSVP_EMAIL_GMAIL_CLIENT_ID", "cid")
	t.Setenv("RSVP_EMAIL_GMAIL_CLIENT_SECRET", "csecret")
	t.Setenv("RSVP_EMAIL_GMAIL_REFRESH_TOKEN", "rtoken")
	t.Setenv("RSVP_EMAIL_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("RSVP_EMAIL_TELEGRAM_CHAT_ID", "-1001")
	t.Setenv("RSVP_EMAIL_TELEGRAM_SERVER_URL", "http://bot.local")
	t.Setenv("RSVP_EMAIL_EMAILJS_PRIVATE_KEY", "priv")
	t.Setenv("RSVP_REDIS_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, `{"type":"service_account"}`, cfg.Email.Gmail.CredentialsJSON)
	assert.Equal(t, "cid", cfg.Email.Gmail.ClientID)
	assert.Equal(t, "csecret", cfg.Email.Gmail.ClientSecret)
	assert.Equal(t, "rtoken", cfg.Email.Gmail.RefreshToken)
	assert.Equal(t, "123:abc", cfg.Email.Telegram.Token)
	assert.Equal(t, int64(-1001), cfg.Email.Telegram.ChatID)
	assert.Equal(t, "http://bot.local", cfg.Email.Telegram.ServerURL)
	assert.Equal(t, "priv", cfg.Email.EmailJS.PrivateKey)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
}

func TestConfig_Redacted(t *testing.T) {
	cfg := Config{}
	cfg.Email.EmailJS.PublicKey = "pk"
	cfg.Email.EmailJS.PrivateKey = "secret"
	cfg.Email.Telegram.Token = "123:abc"
	cfg.Redis.Password = ""

	out := cfg.Redacted()

	assert.Equal(t, "pk", out.Email.EmailJS.PublicKey)
	assert.Equal(t, redactedValue, out.Email.EmailJS.PrivateKey)
	assert.Equal(t, redactedValue, out.Email.Telegram.Token)
	assert.Empty(t, out.Redis.Password)
	assert.Equal(t, "secret", cfg.Email.EmailJS.PrivateKey, "original must be untouched")
}
