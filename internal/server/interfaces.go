// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract of the transport server.
type Server interface {
	// RunServer serves requests until ctx is cancelled, then shuts down
	// gracefully. It returns early if the listener fails.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server within the deadline of ctx.
	Shutdown(ctx context.Context) error
}
