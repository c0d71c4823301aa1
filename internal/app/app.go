// Package app wires configuration, storage and services for the binaries.
package app

import (
	"context"
	"net"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/segyhp/rent-engine/internal/config"
	"github.com/segyhp/rent-engine/internal/db"
	"github.com/segyhp/rent-engine/internal/metrics"
	"github.com/segyhp/rent-engine/internal/repository"
	"github.com/segyhp/rent-engine/internal/service"
	"github.com/segyhp/rent-engine/internal/settings"
)

type App struct {
	Config   *config.Config
	DB       *sqlx.DB
	Redis    *redis.Client
	Metrics  *metrics.Metrics
	Settings *settings.Service
	Lease    *service.LeaseService
	Log      zerolog.Logger
}

// New connects to postgres and redis and builds the services. A redis that
// does not answer a ping is logged and left out; settings are then read from
// the database on every call.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, reg prometheus.Registerer) (*App, error) {
	database, err := db.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	redisClient := initRedis(ctx, cfg, log)
	m := metrics.New(reg)

	settingsService := settings.NewService(
		repository.NewSettingsRepository(database),
		settings.NewRedisCache(redisClient),
		cfg.GetSettingsCacheTTL(),
		cfg.Business.PaymentDueDays,
		log.With().Str("component", "settings").Logger(),
	)

	leaseService := service.NewLeaseService(
		repository.NewContractRepository(database),
		repository.NewCollectionPaymentRepository(database),
		repository.NewSupplyPaymentRepository(database),
		repository.NewTransactor(database),
		settingsService,
		cfg,
		m,
		log.With().Str("component", "lease").Logger(),
	)

	return &App{
		Config:   cfg,
		DB:       database,
		Redis:    redisClient,
		Metrics:  m,
		Settings: settingsService,
		Lease:    leaseService,
		Log:      log,
	}, nil
}

func initRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.GetHealthTimeout())
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", client.Options().Addr).Msg("redis unavailable, settings cache disabled")
		_ = client.Close()
		return nil
	}
	return client
}

// RedisPing returns a readiness check for redis, or nil when the cache is disabled.
func (a *App) RedisPing() func(ctx context.Context) error {
	if a.Redis == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return a.Redis.Ping(ctx).Err()
	}
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	_ = a.DB.Close()
}
