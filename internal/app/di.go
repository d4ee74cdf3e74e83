package app

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	tgclient "github.com/you-humble/part-monitoring/internal/client/http/telegram"
	"github.com/you-humble/part-monitoring/internal/config"
	envconfig "github.com/you-humble/part-monitoring/internal/config/env"
	"github.com/you-humble/part-monitoring/internal/converter"
	"github.com/you-humble/part-monitoring/internal/migrator"
	"github.com/you-humble/part-monitoring/internal/model"
	repository "github.com/you-humble/part-monitoring/internal/repository/part"
	"github.com/you-humble/part-monitoring/internal/service/alert"
	service "github.com/you-humble/part-monitoring/internal/service/part"
	partproducer "github.com/you-humble/part-monitoring/internal/service/producer/part"
	thttp "github.com/you-humble/part-monitoring/internal/transport/http/part/v1"
	"github.com/you-humble/part-monitoring/internal/wear"
	"github.com/you-humble/part-monitoring/platform/closer"
	"github.com/you-humble/part-monitoring/platform/kafka"
	"github.com/you-humble/part-monitoring/platform/kafka/producer"
	"github.com/you-humble/part-monitoring/platform/logger"
)

type Converter interface {
	PartEventToPayload(ev model.PartEvent) ([]byte, error)
}

type PartRepository interface {
	service.PartRepository
	repository.Store
}

type PartHandler interface {
	Routes() chi.Router
}

type AlertService interface {
	AddChatID(ctx context.Context, chatID int64)
	NotifyDue(ctx context.Context) error
	Run(ctx context.Context) error
}

type di struct {
	mongo      *mongo.Client
	collection *mongo.Collection

	dbPool   *pgxpool.Pool
	migrator *migrator.Migrator

	repository PartRepository

	syncProducer       sarama.SyncProducer
	partEventsProducer kafka.Producer
	partProducer       service.PartEventSender

	conv Converter

	service thttp.PartService
	handler PartHandler

	tgBot        *bot.Bot
	tgClient     alert.MessageSender
	alertService AlertService

	router *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) MongoDB(ctx context.Context) *mongo.Client {
	if d.mongo == nil {
		cfg := config.C()

		mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.DSN()))
		if err != nil {
			panic(fmt.Sprintf("failed to create mongodb client: %v\n", err))
		}
		closer.AddNamed("Mongo Client",
			func(ctx context.Context) error {
				return mongoClient.Disconnect(ctx)
			})

		if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			panic(fmt.Sprintf("failed to ping mongodb: %v\n", err))
		}

		d.mongo = mongoClient
	}

	return d.mongo
}

func (d *di) PartsCollection(ctx context.Context) *mongo.Collection {
	if d.collection == nil {
		coll := d.MongoDB(ctx).
			Database(config.C().Mongo.DatabaseName()).
			Collection(config.C().Mongo.PartsCollection())

		if err := repository.EnsureIndexes(ctx, coll); err != nil {
			panic(fmt.Sprintf("failed to create part indexes: %v\n", err))
		}

		d.collection = coll
	}

	return d.collection
}

func (d *di) DBPool(ctx context.Context) *pgxpool.Pool {
	if d.dbPool == nil {
		pool, err := pgxpool.New(ctx, config.C().Postgres.DSN())
		if err != nil {
			panic(fmt.Sprintf("failed to create pg pool: %v\n", err))
		}

		closer.AddNamed("PGX Pool",
			func(ctx context.Context) error {
				pool.Close()
				return nil
			})

		if err := pool.Ping(ctx); err != nil {
			panic(fmt.Sprintf("failed to ping db: %v\n", err))
		}

		d.dbPool = pool
	}

	return d.dbPool
}

func (d *di) Migrator(ctx context.Context) *migrator.Migrator {
	if d.migrator == nil {
		d.migrator = migrator.NewMigrator(
			stdlib.OpenDBFromPool(d.DBPool(ctx)),
			config.C().Postgres.MigrationDirectory(),
		)

		closer.AddNamed("Migrator",
			func(ctx context.Context) error {
				return d.migrator.Close()
			})
	}

	return d.migrator
}

func (d *di) PartRepository(ctx context.Context) PartRepository {
	if d.repository == nil {
		switch config.C().Store.Driver() {
		case envconfig.StoreDriverMongo:
			d.repository = repository.NewMongoRepository(d.PartsCollection(ctx))
		case envconfig.StoreDriverPostgres:
			d.repository = repository.NewPostgresRepository(d.DBPool(ctx))
		default:
			d.repository = repository.NewFileRepository(config.C().Store.FilePath())
		}
	}

	return d.repository
}

func (d *di) KafkaConverter(ctx context.Context) Converter {
	if d.conv == nil {
		d.conv = converter.NewKafkaConverter()
	}

	return d.conv
}

func (d *di) SyncProducer(ctx context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.PartEventsProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) PartEventsProducer(ctx context.Context) kafka.Producer {
	if d.partEventsProducer == nil {
		d.partEventsProducer = producer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.PartEventsTopic(),
			logger.L(),
			producer.WithHeader("content-type", "application/json"),
		)
	}

	return d.partEventsProducer
}

// PartProducer is nil when events are disabled; the service then drops them.
func (d *di) PartProducer(ctx context.Context) service.PartEventSender {
	if d.partProducer == nil && config.C().Kafka.Enabled() {
		d.partProducer = partproducer.NewPartProducer(
			d.PartEventsProducer(ctx),
			d.KafkaConverter(ctx),
		)
	}

	return d.partProducer
}

func (d *di) PartService(ctx context.Context) thttp.PartService {
	if d.service == nil {
		cfg := config.C()

		d.service = service.NewPartService(
			d.PartRepository(ctx),
			d.PartProducer(ctx),
			wear.Policy{
				DailyHours:            cfg.Wear.DailyHours(),
				WarningThresholdHours: cfg.Wear.WarningThresholdHours(),
			},
			nil,
			cfg.Server.DBReadTimeout(),
			cfg.Server.DBWriteTimeout(),
		)
	}

	return d.service
}

func (d *di) PartHandler(ctx context.Context) PartHandler {
	if d.handler == nil {
		d.handler = thttp.NewPartHandler(d.PartService(ctx))
	}

	return d.handler
}

func (d *di) TelegramBot(ctx context.Context) *bot.Bot {
	if d.tgBot == nil {
		b, err := bot.New(config.C().Telegram.BotToken())
		if err != nil {
			panic(fmt.Sprintf("failed to create telegram bot: %s\n", err.Error()))
		}
		closer.AddNamed("Telegram Bot", func(ctx context.Context) error {
			_, err := b.Close(ctx)
			return err
		})

		d.tgBot = b
	}

	return d.tgBot
}

func (d *di) TelegramClient(ctx context.Context) alert.MessageSender {
	if d.tgClient == nil {
		d.tgClient = tgclient.NewClient(d.TelegramBot(ctx))
	}

	return d.tgClient
}

func (d *di) AlertService(ctx context.Context) AlertService {
	if d.alertService == nil {
		cfg := config.C()

		d.alertService = alert.NewAlertService(
			d.PartService(ctx),
			d.TelegramClient(ctx),
			cfg.Telegram.ChatIDs(),
			cfg.Telegram.AlertInterval(),
			nil,
		)
	}

	return d.alertService
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}
