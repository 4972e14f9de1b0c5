// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import "errors"

// Configuration errors. A sync pass never starts while any of them holds.
var (
	ErrNoEntryTypes     = errors.New("no entry types registered")
	ErrNoAssetType      = errors.New("no asset type registered")
	ErrNoSpaceType      = errors.New("no space type registered")
	ErrEmptyEntityType  = errors.New("empty entity type name")
	ErrEmptyContentType = errors.New("empty content type id")
)
