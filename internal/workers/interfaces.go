// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the long-lived components of the mirror side by
// side: the periodic sync job and the HTTP server.
package workers

import "context"

// Worker is a long-running component. Run blocks until ctx is cancelled or
// the worker fails.
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts an ordinary function to the Worker interface.
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
