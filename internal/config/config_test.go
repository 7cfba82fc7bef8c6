package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
database:
  host: localhost
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q", cfg.Telegram.RunMode)
	}
	if cfg.Services.CurrencyURL != "http://localhost:5001" {
		t.Errorf("currency_url = %q", cfg.Services.CurrencyURL)
	}
	if cfg.Services.DataURL != "http://localhost:5002" {
		t.Errorf("data_url = %q", cfg.Services.DataURL)
	}
	if cfg.Services.TimeoutSeconds != 10 {
		t.Errorf("timeout_seconds = %d", cfg.Services.TimeoutSeconds)
	}
	if cfg.Session.Driver != SessionDriverMemory {
		t.Errorf("session driver = %q", cfg.Session.Driver)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BOT_TOKEN", "999:env")
	t.Setenv("CURRENCY_SERVICE_URL", "http://rates:5001")

	path := writeConfig(t, `
telegram:
  token: "123:abc"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "999:env" {
		t.Errorf("token = %q, env should win", cfg.Telegram.Token)
	}
	if cfg.Services.CurrencyURL != "http://rates:5001" {
		t.Errorf("currency_url = %q", cfg.Services.CurrencyURL)
	}
}

func TestNormalizeRunMode(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.RunMode = "POLLING"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q", cfg.Telegram.RunMode)
	}

	cfg = &Config{}
	cfg.Telegram.RunMode = "carrier-pigeon"
	if err := Normalize(cfg); err == nil {
		t.Error("expected invalid run_mode to fail")
	}
}

func TestNormalizeWebhookRequirements(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.RunMode = RunModeWebhook
	if err := Normalize(cfg); err == nil {
		t.Error("webhook mode without url/listen/port should fail")
	}

	cfg = &Config{}
	cfg.Telegram.RunMode = RunModeWebhook
	cfg.Webhook.URL = "https://bot.example.com/hook"
	cfg.Webhook.Listen = "0.0.0.0"
	cfg.Webhook.Port = 8443
	if err := Normalize(cfg); err != nil {
		t.Errorf("Normalize: %v", err)
	}
}

func TestNormalizeSessionDriver(t *testing.T) {
	cfg := &Config{}
	cfg.Session.Driver = "redis"
	if err := Normalize(cfg); err == nil {
		t.Error("redis driver without addr should fail")
	}

	cfg = &Config{}
	cfg.Session.Driver = "Redis"
	cfg.Session.RedisAddr = "localhost:6379"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Session.Driver != SessionDriverRedis {
		t.Errorf("driver = %q", cfg.Session.Driver)
	}

	cfg = &Config{}
	cfg.Session.Driver = "cookies"
	if err := Normalize(cfg); err == nil {
		t.Error("unknown session driver should fail")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected missing file to fail")
	}
}
