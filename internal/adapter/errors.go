// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Transport errors. Each aborts the current sync pass.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("source unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrRateLimited         = errors.New("rate limited")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	// ErrRequestFailed wraps network-level failures, timeouts and
	// cancellations.
	ErrRequestFailed = errors.New("request failed")

	// ErrMalformedPage means the response body could not be decoded or
	// carried neither a next page nor a next sync url.
	ErrMalformedPage = errors.New("malformed sync page")
)

// Request construction errors.
var (
	// ErrEmptySyncToken is returned by FetchDelta when no token is given.
	ErrEmptySyncToken = errors.New("empty sync token")

	// ErrInvalidFilter is returned when a content type filter is combined
	// with a record type other than "Entry".
	ErrInvalidFilter = errors.New("invalid sync filter")
)
