// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the status and trigger API of the mirror.
//
// It exposes route wiring, request handlers, and middleware. Request
// tracing, access logging, and response compression are handled in this
// package before requests are delegated to the service layer.
package http
