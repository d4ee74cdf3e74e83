package mongo

import (
	"context"

	"go.uber.org/zap"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type Config struct {
	ImageName  string
	Database   string
	ReplicaSet string
	Logger     Logger
}

func buildConfig(opts ...Option) *Config {
	cfg := &Config{
		ImageName:  "mongo:8.0",
		Database:   "test",
		ReplicaSet: "rs0",
		Logger:     nopLogger{},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...zap.Field)  {}
func (nopLogger) Error(context.Context, string, ...zap.Field) {}
