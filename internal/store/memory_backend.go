// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"slices"
	"sync"

	"github.com/MKhiriev/go-content-mirror/models"
)

// MemoryBackend keeps entities in process memory. Load hands out copies, so
// staged mutations never leak into the backend before Apply.
type MemoryBackend struct {
	mu       sync.RWMutex
	entities map[string]map[string]*models.Entity
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entities: make(map[string]map[string]*models.Entity)}
}

func (m *MemoryBackend) Load(_ context.Context, entityType *EntityType, p Predicate) ([]*models.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byID := m.entities[entityType.Name]
	if id, ok := p.Identifier(); ok {
		if e, found := byID[id]; found {
			return []*models.Entity{e.Clone()}, nil
		}
		return nil, nil
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*models.Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, byID[id].Clone())
	}
	return out, nil
}

func (m *MemoryBackend) Apply(_ context.Context, changes ChangeSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ref := range changes.Deletes {
		delete(m.entities[ref.Type], ref.Identifier)
		m.nullify(ref)
	}

	for _, e := range changes.Upserts {
		byID, ok := m.entities[e.Type]
		if !ok {
			byID = make(map[string]*models.Entity)
			m.entities[e.Type] = byID
		}
		stored := e.Clone()
		stored.MarkClean()
		byID[e.Identifier] = stored
	}

	return nil
}

// Count returns the number of stored entities of entityType.
func (m *MemoryBackend) Count(entityType string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities[entityType])
}

// nullify removes references to a deleted entity from every stored entity.
func (m *MemoryBackend) nullify(target models.EntityRef) {
	for _, byID := range m.entities {
		for _, e := range byID {
			for name, refs := range e.Relations() {
				kept := slices.DeleteFunc(refs, func(r models.EntityRef) bool { return r == target })
				if len(kept) != len(refs) {
					e.SetRelationRefs(name, kept)
					e.MarkClean()
				}
			}
		}
	}
}
