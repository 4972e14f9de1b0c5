// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package registry binds remote content types to local entity types.
//
// Registrations are collected in a [Builder] at startup and frozen into an
// immutable [Registry]. Nothing mutates a Registry after Build, so it is
// shared by the sync job and HTTP handlers without locking.
package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-content-mirror/models"
)

// Builder collects type registrations.
type Builder struct {
	entries map[string]models.TypeMapping
	asset   *models.TypeMapping
	space   string
	err     error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string]models.TypeMapping)}
}

// RegisterEntryType binds entries of contentTypeID to entityType. A nil
// mapping is derived from the first record. Registering the same content
// type again replaces the previous registration.
func (b *Builder) RegisterEntryType(contentTypeID, entityType string, mapping models.Mapping) *Builder {
	switch {
	case contentTypeID == "":
		b.err = errors.Join(b.err, fmt.Errorf("%w: entity type %q", ErrEmptyContentType, entityType))
		return b
	case entityType == "":
		b.err = errors.Join(b.err, fmt.Errorf("%w: content type %q", ErrEmptyEntityType, contentTypeID))
		return b
	}

	b.entries[contentTypeID] = models.TypeMapping{EntityType: entityType, Mapping: mapping.Clone()}
	return b
}

// RegisterAssetType sets the single entity type all assets map to.
func (b *Builder) RegisterAssetType(entityType string, mapping models.Mapping) *Builder {
	if entityType == "" {
		b.err = errors.Join(b.err, fmt.Errorf("%w: asset", ErrEmptyEntityType))
		return b
	}

	b.asset = &models.TypeMapping{EntityType: entityType, Mapping: mapping.Clone()}
	return b
}

// RegisterSpaceType sets the entity type holding the sync token.
func (b *Builder) RegisterSpaceType(entityType string) *Builder {
	if entityType == "" {
		b.err = errors.Join(b.err, fmt.Errorf("%w: space", ErrEmptyEntityType))
		return b
	}

	b.space = entityType
	return b
}

// Validate reports every missing registration slot.
func (b *Builder) Validate() error {
	errs := []error{b.err}
	if len(b.entries) == 0 {
		errs = append(errs, ErrNoEntryTypes)
	}
	if b.asset == nil {
		errs = append(errs, ErrNoAssetType)
	}
	if b.space == "" {
		errs = append(errs, ErrNoSpaceType)
	}
	return errors.Join(errs...)
}

// Build validates the registrations and freezes them.
func (b *Builder) Build() (*Registry, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid type registry: %w", err)
	}

	entries := make(map[string]models.TypeMapping, len(b.entries))
	for id, tm := range b.entries {
		entries[id] = models.TypeMapping{EntityType: tm.EntityType, Mapping: tm.Mapping.Clone()}
	}

	return &Registry{
		entries: entries,
		asset:   models.TypeMapping{EntityType: b.asset.EntityType, Mapping: b.asset.Mapping.Clone()},
		space:   b.space,
	}, nil
}

// Registry is the frozen set of type registrations.
type Registry struct {
	entries map[string]models.TypeMapping
	asset   models.TypeMapping
	space   string
}

// Validate re-checks the registry slots. A nil or zero Registry is invalid.
func (r *Registry) Validate() error {
	if r == nil {
		return errors.Join(ErrNoEntryTypes, ErrNoAssetType, ErrNoSpaceType)
	}

	var errs []error
	if len(r.entries) == 0 {
		errs = append(errs, ErrNoEntryTypes)
	}
	if r.asset.EntityType == "" {
		errs = append(errs, ErrNoAssetType)
	}
	if r.space == "" {
		errs = append(errs, ErrNoSpaceType)
	}
	return errors.Join(errs...)
}

// EntryType returns the registration of contentTypeID.
func (r *Registry) EntryType(contentTypeID string) (models.TypeMapping, bool) {
	tm, ok := r.entries[contentTypeID]
	if !ok {
		return models.TypeMapping{}, false
	}
	return models.TypeMapping{EntityType: tm.EntityType, Mapping: tm.Mapping.Clone()}, true
}

// ContentTypes returns the registered content type ids, sorted.
func (r *Registry) ContentTypes() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// EntryTypes returns the distinct local entity types of all entry
// registrations, sorted.
func (r *Registry) EntryTypes() []string {
	types := make([]string, 0, len(r.entries))
	for _, tm := range r.entries {
		types = append(types, tm.EntityType)
	}
	slices.Sort(types)
	return slices.Compact(types)
}

// AssetType returns the asset registration.
func (r *Registry) AssetType() models.TypeMapping {
	return models.TypeMapping{EntityType: r.asset.EntityType, Mapping: r.asset.Mapping.Clone()}
}

// SpaceType returns the entity type of the space record.
func (r *Registry) SpaceType() string {
	return r.space
}

// EntityTypes returns every local entity type the registry refers to, sorted
// and distinct.
func (r *Registry) EntityTypes() []string {
	types := append(r.EntryTypes(), r.asset.EntityType, r.space)
	slices.Sort(types)
	return slices.Compact(types)
}
