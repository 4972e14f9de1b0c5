// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-content-mirror/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService runs sync passes that mirror the remote content source into
// the local store.
type SyncService interface {
	// Sync runs one pass and blocks until it is committed or failed. A pass
	// requested while another one runs fails with ErrSyncInProgress.
	Sync(ctx context.Context) error

	// SyncWithCallback runs one pass in the background and reports its
	// outcome to onComplete, which may be nil.
	SyncWithCallback(ctx context.Context, onComplete func(success bool))

	// StartSync is SyncWithCallback that fails with ErrSyncInProgress,
	// without calling onComplete, when a pass is already running.
	StartSync(ctx context.Context, onComplete func(success bool)) error

	// Status returns the current pass state and the report of the last
	// finished pass.
	Status() models.SyncStatus
}

// SyncJob calls SyncService.Sync periodically.
type SyncJob interface {
	// Start runs a pass immediately and then every interval, defaulting to
	// 5 minutes if interval is zero or negative. Any previously running job
	// is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully stopped. Calling Stop on a job that is not running is a no-op.
	Stop()
}

// AppInfoService exposes build metadata to the HTTP layer.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
