// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	entitiesTable  = "entities"
	relationsTable = "relations"

	colEntityType       = "entity_type"
	colIdentifier       = "identifier"
	colAttributes       = "attributes"
	colUpdatedAt        = "updated_at"
	colName             = "name"
	colPosition         = "position"
	colTargetType       = "target_type"
	colTargetIdentifier = "target_identifier"

	// upsertEntitySuffix turns the entity INSERT into an upsert on the
	// natural key. Both SQLite (>= 3.24) and PostgreSQL accept it.
	upsertEntitySuffix = `ON CONFLICT (entity_type, identifier) DO UPDATE SET
		attributes = excluded.attributes,
		updated_at = excluded.updated_at`
)
