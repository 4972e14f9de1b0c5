// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-content-mirror/internal/adapter"
	"github.com/MKhiriev/go-content-mirror/internal/config"
	"github.com/MKhiriev/go-content-mirror/internal/handler"
	"github.com/MKhiriev/go-content-mirror/internal/logger"
	"github.com/MKhiriev/go-content-mirror/internal/schema"
	"github.com/MKhiriev/go-content-mirror/internal/server"
	"github.com/MKhiriev/go-content-mirror/internal/service"
	"github.com/MKhiriev/go-content-mirror/internal/store"
	"github.com/MKhiriev/go-content-mirror/internal/workers"
	"github.com/MKhiriev/go-content-mirror/models"
)

const role = "go-content-mirror"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
	printBuildInfo(buildInfo)

	cfg, err := config.GetMirrorConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger(role).Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger(role)
	if cfg.App.LogFile != "" {
		log = logger.NewFileLogger(role, cfg.App.LogFile)
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}
	log.Info().Stringer("build", buildInfo).Str("version", cfg.App.Version).Msg("starting mirror")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	err = run(log.WithContext(ctx), *cfg, log)
	stop()

	if err != nil {
		log.Err(err).Msg("mirror stopped with an error")
		os.Exit(1)
	}
	log.Info().Msg("mirror stopped")
}

func run(ctx context.Context, cfg config.MirrorConfig, log *logger.Logger) error {
	definition, err := schema.Load(cfg.App.SchemaFile)
	if err != nil {
		return fmt.Errorf("error loading schema: %w", err)
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, definition.Schema, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	source, err := adapter.NewHTTPContentSource(cfg.Source, log)
	if err != nil {
		return fmt.Errorf("error creating content source: %w", err)
	}

	services, err := service.NewServices(storages, source, definition.Registry, cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	if cfg.Workers.Once {
		return services.SyncService.Sync(ctx)
	}

	runners := []workers.Worker{workers.NewSyncWorker(services.SyncJob, cfg.Workers.SyncInterval, log)}
	if cfg.Server.HTTPAddress != "" {
		handlers, err := handler.NewHandlers(services, cfg.Server, log)
		if err != nil {
			return fmt.Errorf("error creating handlers: %w", err)
		}
		srv, err := server.NewServer(handlers, cfg.Server, log)
		if err != nil {
			return fmt.Errorf("error creating server: %w", err)
		}
		runners = append(runners, workers.WorkerFunc(srv.RunServer))
	}

	return workers.NewWorkers(runners...).Run(ctx)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
