// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Configuration errors. They abort a pass before any record is applied and
// are never retried.
var (
	// ErrEmptyMapping is returned for a mapping without attributes, whether
	// registered explicitly or derived from a record whose fields match no
	// attribute of the registered type.
	ErrEmptyMapping = errors.New("empty field mapping")

	// ErrUnknownEntityType is returned when a registered entity type is not
	// part of the store schema.
	ErrUnknownEntityType = errors.New("registered entity type is not in the store schema")

	// ErrSpaceWithoutSyncToken is returned when the space entity type has no
	// syncToken attribute.
	ErrSpaceWithoutSyncToken = errors.New("space entity type has no syncToken attribute")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Sync pass errors.
var (
	// ErrSyncInProgress is returned when a pass is requested while another
	// one is running.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrNoSyncToken is returned when the source ends a pass without
	// handing out a token for the next one.
	ErrNoSyncToken = errors.New("source finished the pass without a sync token")
)

// isConfigError reports whether err must abort the pass.
func isConfigError(err error) bool {
	return errors.Is(err, ErrEmptyMapping) ||
		errors.Is(err, ErrUnknownEntityType) ||
		errors.Is(err, ErrSpaceWithoutSyncToken)
}
