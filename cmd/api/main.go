package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/zatekoja/ncrm/internal/adapters/events"
	"github.com/zatekoja/ncrm/internal/adapters/filestore"
	"github.com/zatekoja/ncrm/internal/api/handlers"
	"github.com/zatekoja/ncrm/internal/api/routes"
	"github.com/zatekoja/ncrm/internal/application/services"
	"github.com/zatekoja/ncrm/internal/domain/providers"
	"github.com/zatekoja/ncrm/internal/infrastructure/clients/redis"
	"github.com/zatekoja/ncrm/internal/infrastructure/observability"
	"github.com/zatekoja/ncrm/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// File-backed repositories share one lock so a rename cannot interleave
	// with a note write.
	fs := afero.NewOsFs()
	hospitalRepo := filestore.NewHospitalAdapter(fs, cfg.Storage.HospitalPath())
	recordRepo := filestore.NewDoctorRecordAdapter(fs, cfg.Storage.NotesPath())
	lock := services.NewStoreLock()

	directoryService := services.NewDirectoryService(hospitalRepo, recordRepo, lock)
	recordService := services.NewRecordService(hospitalRepo, recordRepo, lock)

	// Redis is optional; without it changes are simply not announced.
	var eventBus providers.EventBus
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize Redis client, events disabled")
		} else {
			defer redisClient.Close()
			eventBus = events.NewRedisEventBus(redisClient)
			directoryService.SetEventBus(eventBus)
			recordService.SetEventBus(eventBus)
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("event bus initialized")
		}
	}

	if cfg.App.SeedDefaultHospital {
		seeded, err := directoryService.Seed(ctx)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Storage.HospitalPath()).Msg("failed to read hospital data")
		}
		if seeded {
			log.Info().Str("hospital", services.DefaultHospitalName).Msg("created default hospital")
		}
	}

	router := routes.NewRouter(
		handlers.NewHospitalHandler(directoryService),
		handlers.NewDoctorHandler(directoryService),
		handlers.NewRecordHandler(recordService),
		handlers.NewImportHandler(directoryService),
		cfg.Server.AllowedOrigins,
		metrics,
	)

	serverAddr := cfg.Server.ServerAddr()
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", serverAddr).
			Str("data_dir", cfg.Storage.DataDir).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
