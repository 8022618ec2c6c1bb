package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-feedback/internal/config"
	"github.com/MKhiriev/go-feedback/internal/handler"
	"github.com/MKhiriev/go-feedback/internal/limiter"
	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/internal/server"
	"github.com/MKhiriev/go-feedback/internal/service"
	"github.com/MKhiriev/go-feedback/internal/session"
	"github.com/MKhiriev/go-feedback/internal/store"
	"github.com/MKhiriev/go-feedback/internal/workers"
	"github.com/MKhiriev/go-feedback/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("go-feedback-server", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("go-feedback-server", cfg.App.LogLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services := service.NewServices(storages, cfg.App, buildInfo, log)

	if cfg.App.SeedDemoUser {
		if err = service.SeedDemoUser(ctx, services.AuthService, log); err != nil {
			log.Fatal().Err(err).Msg("error seeding demo user")
		}
	}

	loginLimiter, err := limiter.New(ctx, cfg.Limiter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating login limiter")
	}

	var background []workers.Worker
	switch l := loginLimiter.(type) {
	case *limiter.MemoryLimiter:
		background = append(background, workers.NewPruneWorker("login-limiter", l, cfg.Workers.PruneInterval, log))
	case *limiter.RedisLimiter:
		defer l.Close()
	}
	bg := workers.NewWorkers(background...)
	bg.Run(ctx)

	handlers, err := handler.NewHandlers(services, session.NewManager(cfg.Session), loginLimiter, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()

	cancel()
	bg.Wait()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
