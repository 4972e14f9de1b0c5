// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-content-mirror/internal/adapter"
	"github.com/MKhiriev/go-content-mirror/internal/config"
	"github.com/MKhiriev/go-content-mirror/internal/logger"
	"github.com/MKhiriev/go-content-mirror/internal/registry"
	"github.com/MKhiriev/go-content-mirror/internal/store"
	"github.com/MKhiriev/go-content-mirror/models"
)

type Services struct {
	SyncService    SyncService
	SyncJob        SyncJob
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, source adapter.ContentSource, reg *registry.Registry, cfg config.MirrorConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	filter := models.SyncFilter{Type: cfg.Source.SyncType, ContentType: cfg.Source.ContentType}
	syncService := NewSyncService(source, storages.Repository, reg, filter, logger)

	return &Services{
		SyncService:    syncService,
		SyncJob:        NewSyncJob(syncService, logger),
		AppInfoService: appInfo,
	}, nil
}
