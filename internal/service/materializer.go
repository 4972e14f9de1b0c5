// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-content-mirror/internal/mapper"
	"github.com/MKhiriev/go-content-mirror/internal/store"
	"github.com/MKhiriev/go-content-mirror/models"
)

// Materializer turns a remote record into its local entity.
type Materializer struct {
	repo store.Repository
}

func NewMaterializer(repo store.Repository) *Materializer {
	return &Materializer{repo: repo}
}

// Materialize fetches the entity of entityType with the given identifier,
// creating it when absent, and assigns fields through mapping. Repeating the
// call with the same input leaves the store unchanged.
//
// created reports whether a new entity was staged. When the entity exists
// but some values were rejected by the typed setters, the entity is returned
// together with the joined rejections.
func (m *Materializer) Materialize(ctx context.Context, identifier string, fields models.Fields, entityType string, mapping models.Mapping) (entity *models.Entity, created bool, err error) {
	if len(mapping) == 0 {
		return nil, false, fmt.Errorf("%w: %s %s", ErrEmptyMapping, entityType, identifier)
	}

	descriptor, err := m.repo.EntityType(entityType)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrUnknownEntityType, err)
	}

	found, err := m.repo.FetchAll(ctx, entityType, store.ByIdentifier(identifier))
	if err != nil {
		return nil, false, fmt.Errorf("fetch %s %s: %w", entityType, identifier, err)
	}

	if len(found) > 0 {
		entity = found[0]
	} else {
		entity, err = m.repo.Create(ctx, entityType)
		if err != nil {
			return nil, false, fmt.Errorf("create %s %s: %w", entityType, identifier, err)
		}
		entity.SetIdentifier(identifier)
		created = true
	}

	if err = mapper.Apply(fields, mapping, entity, descriptor); err != nil {
		return entity, created, fmt.Errorf("map %s %s: %w", entityType, identifier, err)
	}

	return entity, created, nil
}
