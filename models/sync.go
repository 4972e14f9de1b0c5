// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncState is a state of the sync pass state machine.
type SyncState string

const (
	SyncStateIdle                   SyncState = "idle"
	SyncStateFetchingDelta          SyncState = "fetching_delta"
	SyncStateApplyingChanges        SyncState = "applying_changes"
	SyncStateResolvingRelationships SyncState = "resolving_relationships"
	SyncStateCommitting             SyncState = "committing"
	SyncStateFailed                 SyncState = "failed"
)

// SyncReport summarises one sync pass. It is kept as the last report by the
// sync service and exposed by the status endpoint.
type SyncReport struct {
	PassID  string `json:"pass_id"`
	Initial bool   `json:"initial"`
	Success bool   `json:"success"`

	Pages    int `json:"pages"`
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
	Skipped  int `json:"skipped"`
	Resolved int `json:"resolved_links"`
	Dropped  int `json:"dropped_links"`

	// SyncToken is the token persisted by a successful pass, or the
	// unchanged previous token when the pass failed.
	SyncToken string `json:"sync_token,omitempty"`

	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
}

// SyncStatus is the payload of the status endpoint.
type SyncStatus struct {
	State      SyncState   `json:"state"`
	LastReport *SyncReport `json:"last_report,omitempty"`
}
