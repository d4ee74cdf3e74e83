package envconfig

import (
	"fmt"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
)

var logLevels = []string{"debug", "info", "warn", "error"}

type loggerEnv struct {
	Level  string `env:"LOGGER_LEVEL" envDefault:"info"`
	AsJSON bool   `env:"LOGGER_AS_JSON" envDefault:"true"`
}

type logger struct {
	raw loggerEnv
}

// NewLoggerConfig accepts the level in any case and stores it lowercased.
func NewLoggerConfig() (*logger, error) {
	var raw loggerEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	raw.Level = strings.ToLower(strings.TrimSpace(raw.Level))
	if !slices.Contains(logLevels, raw.Level) {
		return nil, fmt.Errorf("LOGGER_LEVEL must be one of %s, got %q", strings.Join(logLevels, ", "), raw.Level)
	}

	return &logger{raw: raw}, nil
}

func (cfg *logger) Level() string { return cfg.raw.Level }
func (cfg *logger) AsJSON() bool  { return cfg.raw.AsJSON }
