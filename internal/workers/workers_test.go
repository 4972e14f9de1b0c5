// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-content-mirror/internal/logger"
	"github.com/MKhiriev/go-content-mirror/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	var calls atomic.Int32
	count := WorkerFunc(func(context.Context) error {
		calls.Add(1)
		return nil
	})

	err := NewWorkers(count, count, count).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWorkers_Run_Empty(t *testing.T) {
	assert.NoError(t, NewWorkers().Run(context.Background()))
	assert.NoError(t, (&Workers{}).Run(context.Background()))
}

func TestWorkers_Run_FailureCancelsOthers(t *testing.T) {
	boom := errors.New("listen: address in use")

	blocking := WorkerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	failing := WorkerFunc(func(context.Context) error { return boom })

	done := make(chan error, 1)
	go func() { done <- NewWorkers(blocking, failing).Run(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("workers did not stop after a failure")
	}
}

func TestWorkers_Run_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	blocking := WorkerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- NewWorkers(blocking, blocking).Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("workers did not stop after cancel")
	}
}

func TestSyncWorker_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockSyncJob(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	gomock.InOrder(
		job.EXPECT().Start(gomock.Any(), time.Minute).Do(func(context.Context, time.Duration) { cancel() }),
		job.EXPECT().Stop(),
	)

	err := NewSyncWorker(job, time.Minute, logger.Nop()).Run(ctx)

	assert.NoError(t, err)
}
