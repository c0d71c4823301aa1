package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/segyhp/rent-engine/internal/app"
	"github.com/segyhp/rent-engine/internal/config"
	"github.com/segyhp/rent-engine/internal/jobs"
	"github.com/segyhp/rent-engine/internal/logger"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Server.Env, cfg.Logging.Level, cfg.Logging.Format).
		With().Str("component", "scheduler").Logger()
	log.Info().Msg("starting lease scheduler")

	application, err := app.New(context.Background(), cfg, log, prometheus.NewRegistry())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer application.Close()

	loc := cfg.Location()
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	runner := jobs.NewRunner(application.Lease, application.Metrics, log, loc, 10*time.Minute)
	if err := runner.Register(c, cfg.Scheduler.ExpirySpec, cfg.Scheduler.DigestSpec); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule jobs")
	}

	// Start the scheduler
	c.Start()
	log.Info().Str("timezone", loc.String()).Msg("scheduler started")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down scheduler")
	<-c.Stop().Done()
	log.Info().Msg("scheduler stopped")
}
