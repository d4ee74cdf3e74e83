package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	envconfig "github.com/you-humble/part-monitoring/internal/config/env"
)

var cfg *config

type config struct {
	Server   Server
	Logger   Logger
	Store    Store
	Wear     Wear
	Kafka    Kafka
	Telegram Telegram

	// Set only for the matching STORE_DRIVER.
	Mongo    Mongo
	Postgres Database
}

func Load(path ...string) error {
	const op = "config.Load"

	if shouldLoadDotenv() {
		if err := godotenv.Load(path...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: load .env: %w", op, err)
		}
	}

	serverCfg, err := envconfig.NewHTTPServerConfig()
	if err != nil {
		return fmt.Errorf("%s Server: %w", op, err)
	}

	loggerCfg, err := envconfig.NewLoggerConfig()
	if err != nil {
		return fmt.Errorf("%s Logger: %w", op, err)
	}

	storeCfg, err := envconfig.NewStoreConfig()
	if err != nil {
		return fmt.Errorf("%s Store: %w", op, err)
	}

	wearCfg, err := envconfig.NewWearConfig()
	if err != nil {
		return fmt.Errorf("%s Wear: %w", op, err)
	}

	kafkaCfg, err := envconfig.NewKafkaConfig()
	if err != nil {
		return fmt.Errorf("%s Kafka: %w", op, err)
	}

	telegramCfg, err := envconfig.NewTelegramConfig()
	if err != nil {
		return fmt.Errorf("%s Telegram: %w", op, err)
	}

	c := &config{
		Server:   serverCfg,
		Logger:   loggerCfg,
		Store:    storeCfg,
		Wear:     wearCfg,
		Kafka:    kafkaCfg,
		Telegram: telegramCfg,
	}

	switch storeCfg.Driver() {
	case envconfig.StoreDriverMongo:
		mongoCfg, err := envconfig.NewMongoConfig()
		if err != nil {
			return fmt.Errorf("%s Mongo: %w", op, err)
		}
		c.Mongo = mongoCfg
	case envconfig.StoreDriverPostgres:
		postgresCfg, err := envconfig.NewPostgresConfig()
		if err != nil {
			return fmt.Errorf("%s Postgres: %w", op, err)
		}
		c.Postgres = postgresCfg
	}

	cfg = c

	return nil
}

func C() *config { return cfg }

func shouldLoadDotenv() bool {
	return os.Getenv("APP_ENV") == "local"
}
