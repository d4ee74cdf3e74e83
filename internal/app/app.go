package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/sync/errgroup"

	"github.com/you-humble/part-monitoring/internal/config"
	envconfig "github.com/you-humble/part-monitoring/internal/config/env"
	repository "github.com/you-humble/part-monitoring/internal/repository/part"
	"github.com/you-humble/part-monitoring/internal/transport/http/health"
	httpmw "github.com/you-humble/part-monitoring/internal/transport/http/middleware"
	"github.com/you-humble/part-monitoring/platform/closer"
	"github.com/you-humble/part-monitoring/platform/logger"
)

type app struct {
	di     *di
	server *http.Server
}

func New(ctx context.Context) (*app, error) {
	a := &app{}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *app) Run(ctx context.Context) error { return a.run(ctx) }

func (a *app) init(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initDI,
		a.initTables,
		a.initSeed,
		a.initServer,
		a.initTelegram,
	}

	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) initConfig(_ context.Context) error {
	return config.Load()
}

func (a *app) initLogger(_ context.Context) error {
	return logger.Init(
		config.C().Logger.Level(),
		config.C().Logger.AsJSON(),
	)
}

func (a *app) initCloser(_ context.Context) error {
	closer.SetLogger(logger.L())
	return nil
}

func (a *app) initDI(_ context.Context) error {
	a.di = NewDI()
	return nil
}

func (a *app) initTables(ctx context.Context) error {
	if config.C().Store.Driver() != envconfig.StoreDriverPostgres {
		return nil
	}

	if err := a.di.Migrator(ctx).Up(); err != nil {
		logger.Error(ctx, "failed to apply migrations", logger.ErrorF(err))
		return err
	}
	return nil
}

func (a *app) initSeed(ctx context.Context) error {
	if !config.C().Store.Seed() {
		return nil
	}

	seeded, err := repository.PartsBootstrap(ctx, a.di.PartRepository(ctx))
	if err != nil {
		logger.Error(ctx, "failed to seed parts", logger.ErrorF(err))
		return err
	}
	if seeded {
		logger.Info(ctx, "🌱 empty store seeded with template parts")
	}
	return nil
}

func (a *app) initServer(ctx context.Context) error {
	cfg := config.C()

	r := a.di.Router(ctx)
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		httpmw.Logging,
		middleware.Recoverer,
	)

	r.Get("/health", health.HealthCheck)
	r.Get("/ready", health.Readiness(health.CheckerFunc(func(ctx context.Context) error {
		_, err := a.di.PartRepository(ctx).Load(ctx)
		return err
	})))
	r.Mount("/api/v1", a.di.PartHandler(ctx).Routes())

	a.server = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadTimeout(),
	}

	return nil
}

func (a *app) initTelegram(ctx context.Context) error {
	if !config.C().Telegram.Enabled() {
		return nil
	}

	alertSvc := a.di.AlertService(ctx)

	a.di.TelegramBot(ctx).RegisterHandler(
		bot.HandlerTypeMessageText,
		"/start",
		bot.MatchTypeExact,
		func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				return
			}

			logger.Info(ctx, "New subscriber",
				logger.String("username", update.Message.From.Username),
				logger.Int64("chat_id", update.Message.Chat.ID),
			)

			if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: update.Message.Chat.ID,
				Text:   "Subscribed to part replacement digests.",
			}); err != nil {
				logger.Warn(ctx, "failed to greet subscriber", logger.ErrorF(err))
			}

			alertSvc.AddChatID(ctx, update.Message.Chat.ID)
		})

	a.di.TelegramBot(ctx).RegisterHandler(
		bot.HandlerTypeMessageText,
		"/due",
		bot.MatchTypeExact,
		func(ctx context.Context, _ *bot.Bot, update *models.Update) {
			if update.Message == nil {
				return
			}

			alertSvc.AddChatID(ctx, update.Message.Chat.ID)
			if err := alertSvc.NotifyDue(ctx); err != nil {
				logger.Error(ctx, "on-demand digest failed", logger.ErrorF(err))
			}
		})

	return nil
}

func (a *app) run(ctx context.Context) error {
	defer gracefulShutdown()

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info(egCtx,
			"🚀 part monitoring server listening",
			logger.String("address", config.C().Server.Address()),
			logger.String("store", config.C().Store.Driver()),
			logger.Bool("events", config.C().Kafka.Enabled()),
		)
		err := a.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	if config.C().Telegram.Enabled() {
		eg.Go(func() error {
			logger.Info(egCtx, "🤖 Telegram bot started...")
			a.di.TelegramBot(egCtx).Start(egCtx)
			return nil
		})

		eg.Go(func() error {
			logger.Info(egCtx,
				"⏰ replacement digest scheduled",
				logger.Duration("interval", config.C().Telegram.AlertInterval()),
			)
			return a.di.AlertService(egCtx).Run(egCtx)
		})
	}

	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info(egCtx, "🛑 Server shutdown...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			config.C().Server.ShutdownTimeout(),
		)
		defer cancel()

		//nolint:contextcheck
		return a.server.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	return nil
}

//nolint:contextcheck
func gracefulShutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(), // do not inherit cancellation from ctx
		config.C().Server.ShutdownTimeout(),
	)
	defer cancel()

	err := closer.CloseAll(ctx)
	if err != nil {
		logger.Error(ctx, "❌ Error during server shutdown", logger.ErrorF(err))
		logger.Error(ctx, "❌😵‍💫 Server stopped")
		return
	}
	logger.Info(ctx, "✅ Server stopped")
}
