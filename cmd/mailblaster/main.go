package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ragavan2104/mailblaster"
	"github.com/ragavan2104/mailblaster/accounts"
	"github.com/ragavan2104/mailblaster/campaigns"
	"github.com/ragavan2104/mailblaster/config"
	"github.com/ragavan2104/mailblaster/credentials"
	"github.com/ragavan2104/mailblaster/middlewares"
	"github.com/ragavan2104/mailblaster/migrations"
	"github.com/ragavan2104/mailblaster/pkg/cache"
	"github.com/ragavan2104/mailblaster/pkg/db"
	"github.com/ragavan2104/mailblaster/pkg/health"
	"github.com/ragavan2104/mailblaster/pkg/jwt"
	"github.com/ragavan2104/mailblaster/pkg/logger"
	"github.com/ragavan2104/mailblaster/pkg/mailer"
	"github.com/ragavan2104/mailblaster/pkg/metrics"
	"github.com/ragavan2104/mailblaster/pkg/redis"
	"github.com/ragavan2104/mailblaster/relay"
)

const sentryFlushTimeout = 2 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("mailblaster stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.NewWithSentry(cfg.Log,
		middlewares.RequestIDExtractor(),
		middlewares.AdminExtractor(),
	)
	slog.SetDefault(log)

	if cfg.DefaultSecret() && !cfg.Development() {
		log.Warn("JWT_SECRET is the built-in default, set a real secret", slog.String("environment", cfg.AppEnv))
	}

	pool, err := db.Connect(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	if err := db.Migrate(ctx, pool, migrations.FS, cfg.Database.MigrationsTable, log); err != nil {
		pool.Close()
		return err
	}

	var rdb *goredis.Client
	if cfg.Redis.Enabled() {
		if rdb, err = redis.Open(ctx, cfg.Redis, log); err != nil {
			pool.Close()
			return err
		}
	}

	tokens, err := jwt.NewFromString(cfg.JWTSecret)
	if err != nil {
		return err
	}

	renderer, err := mailer.NewRenderer(mailer.WithSenderName(cfg.Providers.Mailer.SenderName))
	if err != nil {
		return err
	}
	factory, err := relay.NewFactory(cfg.Providers, renderer)
	if err != nil {
		return err
	}
	mailRelay := relay.New(credentials.NewStore(pool), factory, cfg.Relay,
		relay.WithLogger(log.With("component", "relay")),
	)

	m := metrics.New()
	registry := metrics.NewRegistry(m)

	store := campaigns.NewStore(pool,
		campaigns.WithStatsCache(statsCache(rdb, cfg.Store), cfg.Store.StatsTTL),
		campaigns.WithStoreLogger(log.With("component", "campaigns")),
	)
	dispatcher := campaigns.NewDispatcher(mailRelay, store, cfg.Dispatcher,
		campaigns.WithRecorder(m),
		campaigns.WithDispatcherLogger(log.With("component", "dispatcher")),
	)

	checks := health.Checks{
		"db":         db.Healthcheck(pool),
		"mail_relay": mailRelay.Healthcheck(),
	}
	if rdb != nil {
		checks["redis"] = redis.Healthcheck(rdb)
	}

	app := mailblaster.NewAPI(mailblaster.APIConfig{
		Logger:      log.With("component", "api"),
		Environment: cfg.AppEnv,
		CORSOrigin:  cfg.CORSOrigin,
		Development: cfg.Development(),
	}, mailblaster.Services{
		Accounts:   accounts.NewService(accounts.NewRepository(pool), tokens, cfg.Accounts),
		Dispatcher: dispatcher,
		History:    store,
		Tokens:     tokens,
		Metrics:    metrics.Handler(registry),
		Checks:     checks,
	})

	opts := []mailblaster.RunOption{
		mailblaster.Logger(log),
		mailblaster.WriteTimeout(cfg.WriteTimeout),
		mailblaster.ShutdownTimeout(cfg.ShutdownTimeout),
		mailblaster.StartupHook(mailRelay.Init),
		mailblaster.StartupHook(mailRelay.Supervise),
		mailblaster.ShutdownHook(mailRelay.Shutdown()),
	}
	if rdb != nil {
		opts = append(opts, mailblaster.ShutdownHook(redis.Shutdown(rdb)))
	}
	opts = append(opts,
		mailblaster.ShutdownHook(db.Shutdown(pool)),
		mailblaster.ShutdownHook(logger.FlushSentry(sentryFlushTimeout)),
	)

	log.Info("mailblaster configured",
		slog.String("environment", cfg.AppEnv),
		slog.String("provider", cfg.Providers.Mailer.Provider),
		slog.Bool("redis", rdb != nil),
	)

	if err := app.Run(cfg.Addr(), opts...); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// statsCache keeps dashboard statistics in redis when it is configured,
// otherwise in process memory.
func statsCache(rdb *goredis.Client, cfg campaigns.Config) cache.Cache[campaigns.Stats] {
	if rdb != nil {
		return cache.NewRedis[campaigns.Stats](rdb, "mailblaster:", cfg.StatsTTL)
	}
	return cache.NewMemory[campaigns.Stats](cfg.StatsTTL, time.Minute)
}
