package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the bot
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Payment  PaymentConfig  `yaml:"payment"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
	Dialog   DialogConfig   `yaml:"dialog"`
	Log      LogConfig      `yaml:"log"`
}

// TelegramConfig holds the bot credentials and the fixed identities the
// moderation protocol depends on
type TelegramConfig struct {
	Token     string `yaml:"token" env:"BOT_TOKEN"`
	AdminID   int64  `yaml:"admin_id" env:"ADMIN_ID"`
	ChannelID int64  `yaml:"channel_id" env:"CHANNEL_ID"`
}

// PaymentConfig holds the flat directory fee and the manual payment details
// shown to passengers
type PaymentConfig struct {
	Amount        int    `yaml:"amount"`
	CardNumber    string `yaml:"card_number"`
	CardHolder    string `yaml:"card_holder"`
	ClickPhone    string `yaml:"click_phone"`
	PaymePhone    string `yaml:"payme_phone"`
	PaymeUsername string `yaml:"payme_username"`
}

// StorageConfig selects the snapshot backend
type StorageConfig struct {
	Backend      string `yaml:"backend" env:"STORAGE_BACKEND"`
	DataFile     string `yaml:"data_file"`
	PaymentsFile string `yaml:"payments_file"`
	PostgresDSN  string `yaml:"postgres_dsn" env:"DATABASE_URL"`
}

// ServerConfig holds the liveness probe listen address
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port" env:"PORT"`
}

// DialogConfig holds the abandoned-dialogue expiry policy
type DialogConfig struct {
	TTL time.Duration `yaml:"ttl" env:"DIALOG_TTL"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// Load reads configuration from a YAML file and applies environment
// overrides on top, so secrets never have to live in the file.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram token is not set")
	}
	if cfg.Telegram.AdminID == 0 {
		return nil, fmt.Errorf("admin id is not set")
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Payment: PaymentConfig{Amount: 5000},
		Storage: StorageConfig{
			Backend:      "file",
			DataFile:     "ride_sharing_bot_data.json",
			PaymentsFile: "payments_data.json",
		},
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Dialog: DialogConfig{TTL: time.Hour},
		Log:    LogConfig{Level: "info"},
	}
}
