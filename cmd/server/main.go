package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/segyhp/rent-engine/internal/app"
	"github.com/segyhp/rent-engine/internal/config"
	"github.com/segyhp/rent-engine/internal/handler"
	"github.com/segyhp/rent-engine/internal/logger"
	"github.com/segyhp/rent-engine/internal/metrics"
	"github.com/segyhp/rent-engine/pkg/response"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Server.Env, cfg.Logging.Level, cfg.Logging.Format)
	response.SetLogger(log.With().Str("component", "http").Logger())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ctx := context.Background()
	application, err := app.New(ctx, cfg, log, registry)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer application.Close()

	leaseHandler := handler.NewLeaseHandler(application.Lease, cfg.Location(), log.With().Str("component", "http").Logger())
	healthHandler := handler.NewHealthHandler(application.DB, application.RedisPing(), cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(leaseHandler, healthHandler, application.Metrics, registry, log)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupRoutes(
	leaseHandler *handler.LeaseHandler,
	healthHandler *handler.HealthHandler,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	log zerolog.Logger,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.CORSMiddleware, response.LoggingMiddleware(log), handler.MetricsMiddleware(m))

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/contracts", leaseHandler.CreateContract).Methods("POST")
	api.HandleFunc("/contracts", leaseHandler.ListContracts).Methods("GET")
	api.HandleFunc("/contracts/expire", leaseHandler.ExpireContracts).Methods("POST")
	api.HandleFunc("/contracts/{id}", leaseHandler.GetContract).Methods("GET")
	api.HandleFunc("/contracts/{id}/status", leaseHandler.GetContractStatus).Methods("GET")
	api.HandleFunc("/contracts/{id}/activate", leaseHandler.ActivateContract).Methods("POST")
	api.HandleFunc("/contracts/{id}/terminate", leaseHandler.TerminateContract).Methods("POST")
	api.HandleFunc("/contracts/{id}/renew", leaseHandler.RenewContract).Methods("POST")
	api.HandleFunc("/contracts/{id}/suspend", leaseHandler.SuspendContract).Methods("POST")
	api.HandleFunc("/contracts/{id}/resume", leaseHandler.ResumeContract).Methods("POST")
	api.HandleFunc("/contracts/{id}/collections", leaseHandler.ListContractCollections).Methods("GET")
	api.HandleFunc("/contracts/{id}/supply-payments", leaseHandler.ListSupplyPayments).Methods("GET")

	api.HandleFunc("/collections", leaseHandler.ListCollections).Methods("GET")
	api.HandleFunc("/collections/digest", leaseHandler.CollectionsDigest).Methods("GET")
	api.HandleFunc("/collections/{id}/collect", leaseHandler.RecordCollection).Methods("POST")
	api.HandleFunc("/collections/{id}/postpone", leaseHandler.PostponePayment).Methods("POST")
	api.HandleFunc("/collections/{id}", leaseHandler.DeletePayment).Methods("DELETE")

	api.HandleFunc("/supply-payments", leaseHandler.ListSupplyPaymentsByFilter).Methods("GET")
	api.HandleFunc("/supply-payments/{id}", leaseHandler.DeleteSupplyPayment).Methods("DELETE")
	api.HandleFunc("/supply-payments/{id}/pay", leaseHandler.RecordSupplyPayment).Methods("POST")

	api.HandleFunc("/settings/grace-days", leaseHandler.GetGraceDays).Methods("GET")
	api.HandleFunc("/settings/grace-days", leaseHandler.SetGraceDays).Methods("PUT")

	api.HandleFunc("/reports/collections.xlsx", leaseHandler.ExportCollections).Methods("GET")

	return router
}
