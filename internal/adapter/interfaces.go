// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer access to the remote content
// delivery API.
//
// The primary abstraction is [ContentSource], which decouples the sync
// engine from the wire protocol. The package ships an HTTP/REST
// implementation ([NewHTTPContentSource]) that decodes every page into
// [models.DeltaPage] before returning it, so the engine never sees JSON.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrRateLimited] for 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-content-mirror/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/content_source_mock.go -package=mock

// ContentSource fetches pages of the remote sync feed.
//
// A logical pass starts with FetchInitial (no stored token) or FetchDelta
// (stored token) and continues with FetchDelta(page.NextPageToken) until a
// page carries a NextSyncToken.
type ContentSource interface {
	// FetchInitial requests the first page of a full sync. filter narrows
	// the records the source returns.
	FetchInitial(ctx context.Context, filter models.SyncFilter) (models.DeltaPage, error)

	// FetchDelta requests the page addressed by token, which is either a
	// stored sync token or the next page token of the previous page.
	FetchDelta(ctx context.Context, token string, filter models.SyncFilter) (models.DeltaPage, error)
}
