package envconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type wearEnv struct {
	DailyHours            int `env:"WEAR_DAILY_OPERATING_HOURS" envDefault:"8"`
	WarningThresholdHours int `env:"WEAR_WARNING_THRESHOLD_HOURS" envDefault:"500"`
}

type wear struct {
	raw wearEnv
}

func NewWearConfig() (*wear, error) {
	var raw wearEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	if raw.DailyHours <= 0 || raw.DailyHours > 24 {
		return nil, fmt.Errorf("WEAR_DAILY_OPERATING_HOURS must be in 1..24, got %d", raw.DailyHours)
	}
	if raw.WarningThresholdHours <= 0 {
		return nil, fmt.Errorf("WEAR_WARNING_THRESHOLD_HOURS must be positive, got %d", raw.WarningThresholdHours)
	}

	return &wear{raw: raw}, nil
}

func (cfg *wear) DailyHours() int            { return cfg.raw.DailyHours }
func (cfg *wear) WarningThresholdHours() int { return cfg.raw.WarningThresholdHours }
