// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-content-mirror/internal/logger"
	"github.com/MKhiriev/go-content-mirror/internal/service"
)

type syncWorker struct {
	job      service.SyncJob
	interval time.Duration
	logger   *logger.Logger
}

// NewSyncWorker runs job every interval for as long as the worker runs.
func NewSyncWorker(job service.SyncJob, interval time.Duration, logger *logger.Logger) Worker {
	return &syncWorker{job: job, interval: interval, logger: logger}
}

func (w *syncWorker) Run(ctx context.Context) error {
	w.logger.Info().Dur("interval", w.interval).Msg("starting sync job")
	w.job.Start(ctx, w.interval)

	<-ctx.Done()

	w.job.Stop()
	w.logger.Info().Msg("sync job stopped")
	return nil
}
