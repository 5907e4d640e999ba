package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
  admin_id: 777
  channel_id: -1001234
payment:
  amount: 7000
  card_number: "8600 1234"
storage:
  backend: file
  data_file: data.json
dialog:
  ttl: 30m
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "123:abc" || cfg.Telegram.AdminID != 777 {
		t.Errorf("telegram = %+v", cfg.Telegram)
	}
	if cfg.Telegram.ChannelID != -1001234 {
		t.Errorf("channel id = %d", cfg.Telegram.ChannelID)
	}
	if cfg.Payment.Amount != 7000 {
		t.Errorf("amount = %d", cfg.Payment.Amount)
	}
	if cfg.Storage.DataFile != "data.json" {
		t.Errorf("data file = %q", cfg.Storage.DataFile)
	}
	if cfg.Dialog.TTL != 30*time.Minute {
		t.Errorf("ttl = %v", cfg.Dialog.TTL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %q", cfg.Log.Level)
	}

	// Untouched sections keep their defaults.
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Storage.PaymentsFile != "payments_data.json" {
		t.Errorf("payments file = %q", cfg.Storage.PaymentsFile)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "from-file"
  admin_id: 1
`)
	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("ADMIN_ID", "777")
	t.Setenv("PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "from-env" {
		t.Errorf("token = %q", cfg.Telegram.Token)
	}
	if cfg.Telegram.AdminID != 777 {
		t.Errorf("admin id = %d", cfg.Telegram.AdminID)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestMissingFileUsesEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "777")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("token = %q", cfg.Telegram.Token)
	}
	if cfg.Payment.Amount != 5000 {
		t.Errorf("amount = %d", cfg.Payment.Amount)
	}
}

func TestValidation(t *testing.T) {
	path := writeConfig(t, `
telegram:
  admin_id: 777
`)
	if _, err := Load(path); err == nil {
		t.Error("expected an error without a token")
	}

	path = writeConfig(t, `
telegram:
  token: "123:abc"
`)
	if _, err := Load(path); err == nil {
		t.Error("expected an error without an admin id")
	}
}
