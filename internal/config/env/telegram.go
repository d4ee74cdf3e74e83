package envconfig

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

type telegramEnv struct {
	Enabled       bool          `env:"TELEGRAM_ENABLED" envDefault:"false"`
	BotToken      string        `env:"TELEGRAM_BOT_TOKEN"`
	ChatIDs       []int64       `env:"TELEGRAM_CHAT_IDS" envSeparator:","`
	AlertInterval time.Duration `env:"ALERT_INTERVAL" envDefault:"24h"`
}

type telegram struct {
	raw telegramEnv
}

func NewTelegramConfig() (*telegram, error) {
	var raw telegramEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	if raw.Enabled && raw.BotToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is required when TELEGRAM_ENABLED is set")
	}
	if raw.AlertInterval <= 0 {
		return nil, errors.New("ALERT_INTERVAL must be positive")
	}

	return &telegram{raw: raw}, nil
}

func (cfg *telegram) Enabled() bool                { return cfg.raw.Enabled }
func (cfg *telegram) BotToken() string             { return cfg.raw.BotToken }
func (cfg *telegram) ChatIDs() []int64             { return cfg.raw.ChatIDs }
func (cfg *telegram) AlertInterval() time.Duration { return cfg.raw.AlertInterval }
