// Package config loads the application configuration from a YAML file with
// environment-variable overrides. A local .env file is honored when present.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/tajik-krasava/RPP/internal/database"
)

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

// Session store driver names.
const (
	SessionDriverMemory = "memory"
	SessionDriverRedis  = "redis"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// ServicesConfig points the bot at the two backend services and declares
// the listen addresses the services themselves bind to.
type ServicesConfig struct {
	CurrencyURL    string `yaml:"currency_url" envconfig:"CURRENCY_SERVICE_URL"`
	DataURL        string `yaml:"data_url" envconfig:"DATA_SERVICE_URL"`
	CurrencyListen string `yaml:"currency_listen" envconfig:"CURRENCY_SERVICE_LISTEN"`
	DataListen     string `yaml:"data_listen" envconfig:"DATA_SERVICE_LISTEN"`
	// TimeoutSeconds bounds a single backend call made by the bot.
	TimeoutSeconds int `yaml:"timeout_seconds" envconfig:"SERVICES_TIMEOUT_SECONDS"`
}

// SessionConfig selects the conversation store driver.
type SessionConfig struct {
	Driver        string `yaml:"driver" envconfig:"SESSION_DRIVER"`
	RedisAddr     string `yaml:"redis_addr" envconfig:"SESSION_REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" envconfig:"SESSION_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" envconfig:"SESSION_REDIS_DB"`
	// TTLMinutes expires abandoned redis sessions; 0 -> driver default.
	TTLMinutes int `yaml:"ttl_minutes" envconfig:"SESSION_TTL_MINUTES"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

// RateLimitConfig holds settings for per-user rate limiting of bot updates.
type RateLimitConfig struct {
	IntervalMS int `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
}

// Config aggregates the configuration of all three binaries.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Services  ServicesConfig  `yaml:"services"`
	Session   SessionConfig   `yaml:"session"`
	Database  database.Config `yaml:"database"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Load reads configuration from a YAML file and environment variables.
// A .env file in the working directory is loaded first when it exists.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if cfg.Services.CurrencyURL == "" {
		cfg.Services.CurrencyURL = "http://localhost:5001"
	}
	if cfg.Services.DataURL == "" {
		cfg.Services.DataURL = "http://localhost:5002"
	}
	if cfg.Services.CurrencyListen == "" {
		cfg.Services.CurrencyListen = ":5001"
	}
	if cfg.Services.DataListen == "" {
		cfg.Services.DataListen = ":5002"
	}
	if cfg.Services.TimeoutSeconds < 0 {
		return fmt.Errorf("services.timeout_seconds must be >= 0")
	}
	if cfg.Services.TimeoutSeconds == 0 {
		cfg.Services.TimeoutSeconds = 10
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Session.Driver))
	if driver == "" {
		driver = SessionDriverMemory
	}
	switch driver {
	case SessionDriverMemory:
	case SessionDriverRedis:
		if strings.TrimSpace(cfg.Session.RedisAddr) == "" {
			return fmt.Errorf("session.redis_addr is required when session.driver is 'redis'")
		}
	default:
		return fmt.Errorf("invalid session.driver %q; allowed: memory, redis", cfg.Session.Driver)
	}
	cfg.Session.Driver = driver

	if cfg.RateLimit.IntervalMS < 0 {
		return fmt.Errorf("rate_limit.interval_ms must be >= 0")
	}

	return nil
}
