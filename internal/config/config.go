package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Page     PageConfig     `mapstructure:"page" yaml:"page"`
	Email    EmailConfig    `mapstructure:"email" yaml:"email"`
	Redis    RedisConfig    `mapstructure:"redis" yaml:"redis"`
	Security SecurityConfig `mapstructure:"security" yaml:"security"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// PageConfig holds the wording and look of the RSVP page.
// It is the only section reloaded while the server runs.
type PageConfig struct {
	Title         string `mapstructure:"title" yaml:"title"`
	Heading       string `mapstructure:"heading" yaml:"heading"`
	BackgroundURL string `mapstructure:"background_url" yaml:"background_url"`
	// PublicURL is the address guests use to reach the form. It is encoded
	// into the invitation QR code.
	PublicURL string `mapstructure:"public_url" yaml:"public_url"`
}

// EmailConfig holds delivery configuration
type EmailConfig struct {
	// Provider is the delivery provider: "emailjs", "gmail", "telegram" or "log"
	Provider string `mapstructure:"provider" yaml:"provider"`
	// Timeout bounds a single delivery call. Zero means no timeout.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// Recipient is the couple's address notifications are sent to
	Recipient string              `mapstructure:"recipient" yaml:"recipient"`
	Subject   string              `mapstructure:"subject" yaml:"subject"`
	EmailJS   EmailJSConfig       `mapstructure:"emailjs" yaml:"emailjs"`
	Gmail     GmailEmailConfig    `mapstructure:"gmail" yaml:"gmail"`
	Telegram  TelegramEmailConfig `mapstructure:"telegram" yaml:"telegram"`
}

// EmailJSConfig holds EmailJS REST API configuration
type EmailJSConfig struct {
	BaseURL    string `mapstructure:"base_url" yaml:"base_url"`
	ServiceID  string `mapstructure:"service_id" yaml:"service_id"`
	TemplateID string `mapstructure:"template_id" yaml:"template_id"`
	// PublicKey is the account's public key (sent as user_id)
	PublicKey string `mapstructure:"public_key" yaml:"public_key"`
	// PrivateKey is sent as accessToken when the account requires it
	PrivateKey string `mapstructure:"private_key" yaml:"private_key"`
	// Origin is sent as the Origin header; EmailJS rejects requests
	// without one unless non-browser access is enabled for the account.
	Origin string `mapstructure:"origin" yaml:"origin"`
}

// GmailEmailConfig holds Gmail API configuration
type GmailEmailConfig struct {
	// CredentialsJSON is the service account credentials JSON content
	CredentialsJSON string `mapstructure:"credentials_json" yaml:"credentials_json"`
	// ClientID for OAuth2 token-based auth (alternative to service account)
	ClientID     string `mapstructure:"client_id" yaml:"client_id"`
	ClientSecret string `mapstructure:"client_secret" yaml:"client_secret"`
	RefreshToken string `mapstructure:"refresh_token" yaml:"refresh_token"`
	// SenderAddress is the "From" email address
	SenderAddress string `mapstructure:"sender_address" yaml:"sender_address"`
	SenderName    string `mapstructure:"sender_name" yaml:"sender_name"`
}

// TelegramEmailConfig holds Telegram bot delivery configuration
type TelegramEmailConfig struct {
	Token  string `mapstructure:"token" yaml:"token"`
	ChatID int64  `mapstructure:"chat_id" yaml:"chat_id"`
	// ServerURL overrides the Bot API endpoint
	ServerURL string `mapstructure:"server_url" yaml:"server_url"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// Addr returns the Redis address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	RateLimiting RateLimitingConfig `mapstructure:"rate_limiting" yaml:"rate_limiting"`
}

// RateLimitingConfig limits submissions per client IP
type RateLimitingConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	Limit   int           `mapstructure:"limit" yaml:"limit"`
	Window  time.Duration `mapstructure:"window" yaml:"window"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	cfg, _, err := load()
	return cfg, err
}

// LoadAndWatch loads the configuration and, when it came from a file,
// calls onChange with the re-read configuration each time the file changes.
// Reload errors are reported through onError and leave the previous
// configuration in effect.
func LoadAndWatch(onChange func(*Config), onError func(error)) (*Config, error) {
	cfg, v, err := load()
	if err != nil {
		return nil, err
	}
	if v.ConfigFileUsed() == "" {
		return cfg, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		var next Config
		if err := v.Unmarshal(&next); err != nil {
			onError(fmt.Errorf("failed to reload %s: %w", e.Name, err))
			return
		}
		onChange(&next)
	})
	v.WatchConfig()

	return cfg, nil
}

func load() (*Config, *viper.Viper, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/rsvp")

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("RSVP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, v, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Page defaults
	v.SetDefault("page.title", "RSVP")
	v.SetDefault("page.heading", "RSVP Form")
	v.SetDefault("page.background_url", "")
	v.SetDefault("page.public_url", "http://localhost:8080/")

	// Email defaults
	v.SetDefault("email.provider", "emailjs")
	v.SetDefault("email.timeout", "20s")
	v.SetDefault("email.recipient", "")
	v.SetDefault("email.subject", "New RSVP from %s")
	v.SetDefault("email.emailjs.base_url", "https://api.emailjs.com")
	v.SetDefault("email.emailjs.service_id", "service_v7t59c7")
	v.SetDefault("email.emailjs.template_id", "")
	v.SetDefault("email.emailjs.public_key", "")
	v.SetDefault("email.emailjs.private_key", "")
	v.SetDefault("email.emailjs.origin", "")
	v.SetDefault("email.gmail.credentials_json", "")
	v.SetDefault("email.gmail.client_id", "")
	v.SetDefault("email.gmail.client_secret", "")
	v.SetDefault("email.gmail.refresh_token", "")
	v.SetDefault("email.gmail.sender_address", "")
	v.SetDefault("email.gmail.sender_name", "RSVP")
	v.SetDefault("email.telegram.token", "")
	v.SetDefault("email.telegram.chat_id", 0)
	v.SetDefault("email.telegram.server_url", "")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Rate limiting defaults
	v.SetDefault("security.rate_limiting.enabled", true)
	v.SetDefault("security.rate_limiting.limit", 5)
	v.SetDefault("security.rate_limiting.window", "15m")
}

const redactedValue = "********"

// Redacted returns a copy of the configuration with credentials masked,
// suitable for printing.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return redactedValue
	}

	out := c
	out.Email.EmailJS.PrivateKey = mask(c.Email.EmailJS.PrivateKey)
	out.Email.Gmail.CredentialsJSON = mask(c.Email.Gmail.CredentialsJSON)
	out.Email.Gmail.ClientSecret = mask(c.Email.Gmail.ClientSecret)
	out.Email.Gmail.RefreshToken = mask(c.Email.Gmail.RefreshToken)
	out.Email.Telegram.Token = mask(c.Email.Telegram.Token)
	out.Redis.Password = mask(c.Redis.Password)
	return out
}
