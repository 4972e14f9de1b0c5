// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-content-mirror/internal/logger"
	"github.com/MKhiriev/go-content-mirror/internal/registry"
	"github.com/MKhiriev/go-content-mirror/internal/store"
	"github.com/MKhiriev/go-content-mirror/models"
)

const linkTypeAsset = "Asset"

// ResolveStats counts the outcome of a resolution phase.
type ResolveStats struct {
	// Resolved is the number of references wired to an existing entity.
	Resolved int
	// Dropped is the number of references whose target does not exist.
	Dropped int
}

// Resolver wires relationships in two phases: Collect records link targets
// while records are applied, Resolve assigns them once every record of the
// pass is in the store, so delivery order does not matter.
type Resolver struct {
	repo     store.Repository
	registry *registry.Registry

	// source identifier -> relationship name -> targets; no targets clears
	// the relationship
	pending map[string]map[string][]models.Link
}

func NewResolver(repo store.Repository, reg *registry.Registry) *Resolver {
	return &Resolver{
		repo:     repo,
		registry: reg,
		pending:  make(map[string]map[string][]models.Link),
	}
}

// Collect records the link targets of every relationship of entityType found
// in entry. The field is read through mapping when mapping names the
// relationship, otherwise under the relationship's own name. A missing or
// null field clears the relationship; a non-link value is ignored.
func (r *Resolver) Collect(entry models.Entry, entityType string, mapping models.Mapping) error {
	relationships, err := r.repo.RelationshipsFor(entityType)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownEntityType, err)
	}

	for _, name := range relationships {
		path := name
		if mapped, ok := mapping[name]; ok && mapped != "" {
			path = mapped
		}

		v, found := entry.Fields.Lookup(path)
		var links []models.Link
		switch {
		case !found || v.Kind == models.KindNull:
		case v.Kind == models.KindLink:
			links = []models.Link{v.Link}
		case v.Kind == models.KindLinkSequence:
			links = slices.Clone(v.Links)
		case v.Kind == models.KindSequence && len(v.Sequence) == 0:
		default:
			continue
		}

		if r.pending[entry.Identifier] == nil {
			r.pending[entry.Identifier] = make(map[string][]models.Link)
		}
		r.pending[entry.Identifier][name] = links
	}

	return nil
}

// Pending returns the number of sources with collected relationships.
func (r *Resolver) Pending() int {
	return len(r.pending)
}

// Reset forgets everything collected so far.
func (r *Resolver) Reset() {
	r.pending = make(map[string]map[string][]models.Link)
}

// Resolve wires every collected relationship whose source entity exists.
// Targets are looked up among the entities of all registered entry types and
// the asset type; missing targets are dropped and counted. The collected
// state is cleared whether or not Resolve succeeds.
func (r *Resolver) Resolve(ctx context.Context) (ResolveStats, error) {
	defer r.Reset()

	var stats ResolveStats
	if len(r.pending) == 0 {
		return stats, nil
	}

	log := logger.FromContext(ctx)

	entries, err := r.lookup(ctx, r.registry.EntryTypes()...)
	if err != nil {
		return stats, err
	}
	assets, err := r.lookup(ctx, r.registry.AssetType().EntityType)
	if err != nil {
		return stats, err
	}

	for sourceID, relations := range r.pending {
		source, ok := entries[sourceID]
		if !ok {
			log.Debug().
				Str("func", "Resolver.Resolve").
				Str("source", sourceID).
				Msg("source entity is gone, skipping its relationships")
			continue
		}

		descriptor, err := r.repo.EntityType(source.Type)
		if err != nil {
			return stats, fmt.Errorf("%w: %w", ErrUnknownEntityType, err)
		}

		for name, links := range relations {
			targets := make([]*models.Entity, 0, len(links))
			for _, link := range links {
				target := findTarget(link, entries, assets)
				if target == nil {
					stats.Dropped++
					log.Debug().
						Str("func", "Resolver.Resolve").
						Str("source", sourceID).
						Str("relationship", name).
						Str("target", link.ID).
						Msg("relationship target not found, dropped")
					continue
				}
				targets = append(targets, target)
			}
			stats.Resolved += len(targets)

			cardinality, _ := descriptor.Cardinality(name)
			if cardinality == store.ToMany {
				source.SetToMany(name, targets)
				continue
			}

			if len(targets) == 0 {
				source.SetToOne(name, nil)
				continue
			}
			source.SetToOne(name, targets[0])
		}
	}

	return stats, nil
}

// lookup indexes every entity of the given types by identifier. Earlier types
// win on identifier clashes.
func (r *Resolver) lookup(ctx context.Context, entityTypes ...string) (map[string]*models.Entity, error) {
	index := make(map[string]*models.Entity)
	for _, entityType := range entityTypes {
		entities, err := r.repo.FetchAll(ctx, entityType, store.MatchAll())
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", entityType, err)
		}
		for _, e := range entities {
			if _, dup := index[e.Identifier]; !dup {
				index[e.Identifier] = e
			}
		}
	}
	return index, nil
}

func findTarget(link models.Link, entries, assets map[string]*models.Entity) *models.Entity {
	if link.LinkType == linkTypeAsset {
		return assets[link.ID]
	}
	if e, ok := entries[link.ID]; ok {
		return e
	}
	if link.LinkType == "" {
		return assets[link.ID]
	}
	return nil
}
