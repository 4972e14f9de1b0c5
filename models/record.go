// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Entry is a typed record of the remote content source.
type Entry struct {
	// Identifier is globally unique across all entry content types.
	Identifier string

	// ContentTypeID selects the local entity type through the registry.
	ContentTypeID string

	Fields Fields

	// Deleted is set for records reported by a delta page as removed.
	Deleted bool

	Revision  int64
	UpdatedAt *time.Time
}

// Asset is a binary attachment record. Only its metadata is mirrored.
type Asset struct {
	Identifier string
	Fields     Fields
	Deleted    bool

	Revision  int64
	UpdatedAt *time.Time
}

// DeltaPage is one already decoded page returned by the content source.
//
// Exactly one of NextPageToken and NextSyncToken is set: a NextPageToken
// means the logical pass continues on another page, a NextSyncToken marks
// the end of the pass and is the value to persist for the next delta pass.
type DeltaPage struct {
	Entries        []Entry
	Assets         []Asset
	DeletedEntries []string
	DeletedAssets  []string

	NextPageToken string
	NextSyncToken string
}

// HasMore reports whether the source has more pages for the current pass.
func (p DeltaPage) HasMore() bool {
	return p.NextPageToken != ""
}

// SyncFilter narrows an initial sync. Empty fields mean "everything".
type SyncFilter struct {
	// Type is one of "all", "Entry", "Asset", "Deletion", ... as understood
	// by the remote source.
	Type string `json:"type,omitempty"`

	// ContentType restricts entries to a single content type; it requires
	// Type to be "Entry".
	ContentType string `json:"content_type,omitempty"`
}
