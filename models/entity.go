// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"maps"
	"reflect"
	"slices"
)

// EntityRef addresses a local entity by its natural key.
type EntityRef struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// Entity is the store-resident counterpart of an entry, an asset or the space.
//
// Attributes hold scalar values as assigned by the typed setters of the
// entity's type. Relations hold ordered references to other entities; a
// to-one relationship is a slice of length one.
//
// Entities are not safe for concurrent use; a sync pass mutates them from a
// single goroutine.
type Entity struct {
	Type       string
	Identifier string

	attributes map[string]any
	relations  map[string][]EntityRef

	dirty bool
}

// NewEntity returns an empty entity of the given type. New entities start dirty.
func NewEntity(entityType string) *Entity {
	return &Entity{
		Type:       entityType,
		attributes: make(map[string]any),
		relations:  make(map[string][]EntityRef),
		dirty:      true,
	}
}

// Ref returns the natural key of the entity.
func (e *Entity) Ref() EntityRef {
	return EntityRef{Type: e.Type, Identifier: e.Identifier}
}

// SetIdentifier assigns the natural key.
func (e *Entity) SetIdentifier(id string) {
	if e.Identifier != id {
		e.Identifier = id
		e.dirty = true
	}
}

// Attribute returns the value of the named attribute.
func (e *Entity) Attribute(name string) (any, bool) {
	v, ok := e.attributes[name]
	return v, ok
}

// StringAttribute returns the named attribute if it holds a string.
func (e *Entity) StringAttribute(name string) (string, bool) {
	v, ok := e.attributes[name].(string)
	return v, ok
}

// SetAttribute stores v under name. Assigning an equal value leaves the
// entity clean.
func (e *Entity) SetAttribute(name string, v any) {
	e.ensure()
	if old, ok := e.attributes[name]; ok && reflect.DeepEqual(old, v) {
		return
	}
	e.attributes[name] = v
	e.dirty = true
}

// UnsetAttribute removes the named attribute.
func (e *Entity) UnsetAttribute(name string) {
	if _, ok := e.attributes[name]; !ok {
		return
	}
	delete(e.attributes, name)
	e.dirty = true
}

// Attributes returns a copy of all attributes.
func (e *Entity) Attributes() map[string]any {
	return maps.Clone(e.attributes)
}

// SetToOne points the named relationship at target. A nil target clears it.
func (e *Entity) SetToOne(name string, target *Entity) {
	if target == nil {
		e.ClearRelation(name)
		return
	}
	e.SetRelationRefs(name, []EntityRef{target.Ref()})
}

// SetToMany replaces the named relationship with targets, preserving order.
func (e *Entity) SetToMany(name string, targets []*Entity) {
	refs := make([]EntityRef, 0, len(targets))
	for _, t := range targets {
		refs = append(refs, t.Ref())
	}
	e.SetRelationRefs(name, refs)
}

// SetRelationRefs replaces the named relationship with refs. It is used by
// store backends when loading entities.
func (e *Entity) SetRelationRefs(name string, refs []EntityRef) {
	e.ensure()
	if len(refs) == 0 {
		e.ClearRelation(name)
		return
	}
	if slices.Equal(e.relations[name], refs) {
		return
	}
	e.relations[name] = slices.Clone(refs)
	e.dirty = true
}

// ClearRelation removes the named relationship.
func (e *Entity) ClearRelation(name string) {
	if _, ok := e.relations[name]; !ok {
		return
	}
	delete(e.relations, name)
	e.dirty = true
}

// Related returns the ordered references of the named relationship.
func (e *Entity) Related(name string) []EntityRef {
	return slices.Clone(e.relations[name])
}

// Relations returns a copy of all relationships.
func (e *Entity) Relations() map[string][]EntityRef {
	out := make(map[string][]EntityRef, len(e.relations))
	for name, refs := range e.relations {
		out[name] = slices.Clone(refs)
	}
	return out
}

// IsDirty reports whether the entity changed since it was last loaded or saved.
func (e *Entity) IsDirty() bool {
	return e.dirty
}

// MarkClean resets the change flag. Called by the store after loading or saving.
func (e *Entity) MarkClean() {
	e.dirty = false
}

// Clone returns a deep copy of the entity, keeping its change flag.
func (e *Entity) Clone() *Entity {
	c := &Entity{
		Type:       e.Type,
		Identifier: e.Identifier,
		attributes: make(map[string]any, len(e.attributes)),
		relations:  e.Relations(),
		dirty:      e.dirty,
	}
	for k, v := range e.attributes {
		if b, ok := v.([]byte); ok {
			v = slices.Clone(b)
		}
		c.attributes[k] = v
	}
	return c
}

func (e *Entity) ensure() {
	if e.attributes == nil {
		e.attributes = make(map[string]any)
	}
	if e.relations == nil {
		e.relations = make(map[string][]EntityRef)
	}
}
