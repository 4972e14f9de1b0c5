// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-content-mirror/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Repository is the generic local object store the sync engine writes into.
//
// Writes are staged in an in-memory change set: Create, Delete and any
// mutation of a fetched entity become durable only when Save succeeds.
// Discard drops everything staged since the last Save.
type Repository interface {
	// FetchAll returns the entities of entityType matching p, including
	// staged creations and excluding staged deletions. Repeated fetches of
	// the same entity within one change set return the same pointer.
	FetchAll(ctx context.Context, entityType string, p Predicate) ([]*models.Entity, error)

	// Create stages a new, empty entity of entityType.
	Create(ctx context.Context, entityType string) (*models.Entity, error)

	// Delete stages removal of every entity of entityType matching p.
	Delete(ctx context.Context, entityType string, p Predicate) error

	// PropertiesFor returns the attribute names of entityType.
	PropertiesFor(entityType string) ([]string, error)

	// RelationshipsFor returns the relationship-valued attribute names of
	// entityType.
	RelationshipsFor(entityType string) ([]string, error)

	// EntityType returns the schema descriptor of entityType.
	EntityType(entityType string) (*EntityType, error)

	// Save atomically commits all staged changes.
	Save(ctx context.Context) error

	// Discard drops all staged changes.
	Discard()
}

// Backend is the durable half of the store. Apply must be atomic: either the
// whole change set is persisted or nothing is.
type Backend interface {
	Load(ctx context.Context, entityType *EntityType, p Predicate) ([]*models.Entity, error)
	Apply(ctx context.Context, changes ChangeSet) error
}

// ErrorClassificator decides whether a failed database operation may succeed
// if attempted again.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// ChangeSet is the unit of work handed to a Backend. Deletes are applied
// before upserts so an entity deleted and recreated in one pass survives.
type ChangeSet struct {
	Upserts []*models.Entity
	Deletes []models.EntityRef
}

// Empty reports whether there is nothing to apply.
func (c ChangeSet) Empty() bool {
	return len(c.Upserts) == 0 && len(c.Deletes) == 0
}
