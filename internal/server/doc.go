// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the status and trigger HTTP server of the mirror.
//
// It owns the server lifecycle: startup, and graceful shutdown once the
// run context is cancelled.
package server
