package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
	DBReadTimeout() time.Duration
	DBWriteTimeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Store interface {
	Driver() string
	FilePath() string
	Seed() bool
}

type Wear interface {
	DailyHours() int
	WarningThresholdHours() int
}

type Database interface {
	MigrationDirectory() string
	DSN() string
}

type Mongo interface {
	DatabaseName() string
	PartsCollection() string
	DSN() string
}

type Kafka interface {
	Enabled() bool
	Brokers() []string
	PartEventsTopic() string
	PartEventsProducerConfig() *sarama.Config
}

type Telegram interface {
	Enabled() bool
	BotToken() string
	ChatIDs() []int64
	AlertInterval() time.Duration
}
