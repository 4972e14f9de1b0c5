// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-content-mirror/internal/logger"
	"github.com/MKhiriev/go-content-mirror/models"
)

// objectStore implements Repository as a unit of work over a Backend.
type objectStore struct {
	schema  *Schema
	backend Backend
	logger  *logger.Logger

	mu      sync.Mutex
	loaded  map[models.EntityRef]*models.Entity
	created []*models.Entity
	deleted map[models.EntityRef]struct{}
}

// NewRepository wraps backend with change tracking for the given schema.
func NewRepository(schema *Schema, backend Backend, logger *logger.Logger) Repository {
	return &objectStore{
		schema:  schema,
		backend: backend,
		logger:  logger,
		loaded:  make(map[models.EntityRef]*models.Entity),
		deleted: make(map[models.EntityRef]struct{}),
	}
}

func (s *objectStore) FetchAll(ctx context.Context, entityType string, p Predicate) ([]*models.Entity, error) {
	t, err := s.EntityType(entityType)
	if err != nil {
		return nil, err
	}

	rows, err := s.backend.Load(ctx, t, p)
	if err != nil {
		return nil, fmt.Errorf("load %s (%s): %w", entityType, p, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*models.Entity, 0, len(rows))
	seen := make(map[models.EntityRef]struct{}, len(rows))

	// staged creations shadow rows loaded from the backend
	for _, e := range s.created {
		if e.Type != entityType || !p.Matches(e) {
			continue
		}
		if _, dup := seen[e.Ref()]; dup {
			continue
		}
		seen[e.Ref()] = struct{}{}
		result = append(result, e)
	}

	for _, row := range rows {
		ref := row.Ref()
		if _, gone := s.deleted[ref]; gone {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		if cached, ok := s.loaded[ref]; ok {
			row = cached
		} else {
			row.MarkClean()
			s.loaded[ref] = row
		}
		seen[ref] = struct{}{}
		result = append(result, row)
	}

	return result, nil
}

func (s *objectStore) Create(_ context.Context, entityType string) (*models.Entity, error) {
	if _, err := s.EntityType(entityType); err != nil {
		return nil, err
	}

	e := models.NewEntity(entityType)

	s.mu.Lock()
	s.created = append(s.created, e)
	s.mu.Unlock()

	return e, nil
}

func (s *objectStore) Delete(ctx context.Context, entityType string, p Predicate) error {
	t, err := s.EntityType(entityType)
	if err != nil {
		return err
	}

	rows, err := s.backend.Load(ctx, t, p)
	if err != nil {
		return fmt.Errorf("load %s (%s) for delete: %w", entityType, p, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range rows {
		ref := row.Ref()
		s.deleted[ref] = struct{}{}
		delete(s.loaded, ref)
	}

	s.created = slices.DeleteFunc(s.created, func(e *models.Entity) bool {
		return e.Type == entityType && p.Matches(e)
	})

	return nil
}

func (s *objectStore) PropertiesFor(entityType string) ([]string, error) {
	t, err := s.EntityType(entityType)
	if err != nil {
		return nil, err
	}
	return t.Attributes(), nil
}

func (s *objectStore) RelationshipsFor(entityType string) ([]string, error) {
	t, err := s.EntityType(entityType)
	if err != nil {
		return nil, err
	}
	return t.Relationships(), nil
}

func (s *objectStore) EntityType(entityType string) (*EntityType, error) {
	t, ok := s.schema.Type(entityType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}
	return t, nil
}

func (s *objectStore) Save(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	changes, err := s.changeSet()
	if err != nil {
		return err
	}
	if changes.Empty() {
		s.reset()
		return nil
	}

	if err = s.backend.Apply(ctx, changes); err != nil {
		log.Err(err).
			Str("func", "objectStore.Save").
			Int("upserts", len(changes.Upserts)).
			Int("deletes", len(changes.Deletes)).
			Msg("failed to apply change set")
		return fmt.Errorf("apply change set: %w", err)
	}

	for _, e := range changes.Upserts {
		e.MarkClean()
	}
	s.reset()

	log.Debug().
		Str("func", "objectStore.Save").
		Int("upserts", len(changes.Upserts)).
		Int("deletes", len(changes.Deletes)).
		Msg("change set committed")

	return nil
}

func (s *objectStore) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// changeSet collects dirty entities and staged deletions. References to
// deleted entities that were not recreated are stripped from relationships.
func (s *objectStore) changeSet() (ChangeSet, error) {
	var cs ChangeSet

	upserted := make(map[models.EntityRef]struct{})
	for _, e := range s.created {
		if e.Identifier == "" {
			return ChangeSet{}, fmt.Errorf("%w: staged %s", ErrEmptyIdentifier, e.Type)
		}
		upserted[e.Ref()] = struct{}{}
		cs.Upserts = append(cs.Upserts, e)
	}
	for ref, e := range s.loaded {
		if !e.IsDirty() {
			continue
		}
		if _, dup := upserted[ref]; dup {
			continue
		}
		upserted[ref] = struct{}{}
		cs.Upserts = append(cs.Upserts, e)
	}

	// a recreated entity is replaced by its upsert
	for ref := range s.deleted {
		if _, recreated := upserted[ref]; recreated {
			continue
		}
		cs.Deletes = append(cs.Deletes, ref)
	}

	if len(s.deleted) > 0 {
		for _, e := range cs.Upserts {
			for name, refs := range e.Relations() {
				kept := slices.DeleteFunc(slices.Clone(refs), func(r models.EntityRef) bool {
					_, gone := s.deleted[r]
					_, recreated := upserted[r]
					return gone && !recreated
				})
				if len(kept) != len(refs) {
					e.SetRelationRefs(name, kept)
				}
			}
		}
	}

	slices.SortFunc(cs.Deletes, compareRefs)
	slices.SortFunc(cs.Upserts, func(a, b *models.Entity) int { return compareRefs(a.Ref(), b.Ref()) })

	return cs, nil
}

func (s *objectStore) reset() {
	s.loaded = make(map[models.EntityRef]*models.Entity)
	s.created = nil
	s.deleted = make(map[models.EntityRef]struct{})
}

func compareRefs(a, b models.EntityRef) int {
	if a.Type != b.Type {
		if a.Type < b.Type {
			return -1
		}
		return 1
	}
	switch {
	case a.Identifier < b.Identifier:
		return -1
	case a.Identifier > b.Identifier:
		return 1
	default:
		return 0
	}
}
