// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-content-mirror/internal/adapter"
	"github.com/MKhiriev/go-content-mirror/internal/registry"
	"github.com/MKhiriev/go-content-mirror/internal/service"
)

// errorStatusMap is scanned in order; the first match wins.
var errorStatusMap = []struct {
	target error
	status int
}{
	{ErrInvalidAsyncParam, http.StatusBadRequest},

	{service.ErrSyncInProgress, http.StatusConflict},

	{context.DeadlineExceeded, http.StatusGatewayTimeout},
	{adapter.ErrRateLimited, http.StatusServiceUnavailable},
	{adapter.ErrServiceUnavailable, http.StatusServiceUnavailable},
	{adapter.ErrBadRequest, http.StatusBadGateway},
	{adapter.ErrUnauthorized, http.StatusBadGateway},
	{adapter.ErrForbidden, http.StatusBadGateway},
	{adapter.ErrNotFound, http.StatusBadGateway},
	{adapter.ErrBadGateway, http.StatusBadGateway},
	{adapter.ErrInternalServerError, http.StatusBadGateway},
	{adapter.ErrUnexpectedStatus, http.StatusBadGateway},
	{adapter.ErrRequestFailed, http.StatusBadGateway},
	{adapter.ErrMalformedPage, http.StatusBadGateway},
	{adapter.ErrEmptySyncToken, http.StatusBadGateway},
	{service.ErrNoSyncToken, http.StatusBadGateway},

	{service.ErrEmptyMapping, http.StatusInternalServerError},
	{service.ErrUnknownEntityType, http.StatusInternalServerError},
	{service.ErrSpaceWithoutSyncToken, http.StatusInternalServerError},
	{registry.ErrNoEntryTypes, http.StatusInternalServerError},
	{registry.ErrNoAssetType, http.StatusInternalServerError},
	{registry.ErrNoSpaceType, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
