// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/MKhiriev/go-content-mirror/models"
)

// AttributeKind is the native type of an entity attribute.
type AttributeKind string

const (
	KindString  AttributeKind = "string"
	KindInteger AttributeKind = "integer"
	KindFloat   AttributeKind = "float"
	KindBool    AttributeKind = "bool"
	KindDate    AttributeKind = "date"
	KindBlob    AttributeKind = "blob"
	KindJSON    AttributeKind = "json"
)

// Cardinality of a relationship-valued attribute.
type Cardinality string

const (
	ToOne  Cardinality = "to_one"
	ToMany Cardinality = "to_many"
)

// Setter assigns a value to one attribute of an entity, coercing it to the
// attribute's native type. A nil value clears the attribute.
type Setter func(e *models.Entity, v any) error

// dateLayouts are tried in order when a date attribute receives a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02",
}

// EntityType is the static schema descriptor of a local entity type. Its
// setter table is built once by NewEntityType, so field assignment is a
// direct call instead of runtime introspection.
type EntityType struct {
	Name string

	attributes    map[string]AttributeKind
	relationships map[string]Cardinality
	setters       map[string]Setter
}

// NewEntityType validates the descriptor and builds its setter table.
func NewEntityType(name string, attributes map[string]AttributeKind, relationships map[string]Cardinality) (*EntityType, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty entity type name", ErrInvalidSchema)
	}

	t := &EntityType{
		Name:          name,
		attributes:    make(map[string]AttributeKind, len(attributes)),
		relationships: make(map[string]Cardinality, len(relationships)),
		setters:       make(map[string]Setter, len(attributes)),
	}

	for attr, kind := range attributes {
		if attr == "" {
			return nil, fmt.Errorf("%w: %s has an attribute without a name", ErrInvalidSchema, name)
		}
		setter, err := setterFor(attr, kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %w", ErrInvalidSchema, name, attr, err)
		}
		t.attributes[attr] = kind
		t.setters[attr] = setter
	}

	for rel, card := range relationships {
		if card != ToOne && card != ToMany {
			return nil, fmt.Errorf("%w: %s.%s: unknown cardinality %q", ErrInvalidSchema, name, rel, card)
		}
		if _, clash := t.attributes[rel]; clash {
			return nil, fmt.Errorf("%w: %s.%s is both an attribute and a relationship", ErrInvalidSchema, name, rel)
		}
		t.relationships[rel] = card
	}

	return t, nil
}

// MustEntityType is like NewEntityType but panics on error. Meant for tests
// and static declarations.
func MustEntityType(name string, attributes map[string]AttributeKind, relationships map[string]Cardinality) *EntityType {
	t, err := NewEntityType(name, attributes, relationships)
	if err != nil {
		panic(err)
	}
	return t
}

// Attributes returns the sorted attribute names.
func (t *EntityType) Attributes() []string {
	names := make([]string, 0, len(t.attributes))
	for name := range t.attributes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Relationships returns the sorted relationship names.
func (t *EntityType) Relationships() []string {
	names := make([]string, 0, len(t.relationships))
	for name := range t.relationships {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AttributeKind returns the kind of the named attribute.
func (t *EntityType) AttributeKind(name string) (AttributeKind, bool) {
	k, ok := t.attributes[name]
	return k, ok
}

// Cardinality returns the cardinality of the named relationship.
func (t *EntityType) Cardinality(name string) (Cardinality, bool) {
	c, ok := t.relationships[name]
	return c, ok
}

// Setter returns the typed setter of the named attribute.
func (t *EntityType) Setter(name string) (Setter, bool) {
	s, ok := t.setters[name]
	return s, ok
}

// Set assigns v to the named attribute of e through the setter table.
func (t *EntityType) Set(e *models.Entity, name string, v any) error {
	setter, ok := t.setters[name]
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, t.Name, name)
	}
	return setter(e, v)
}

// DecodeAttributes turns a JSON object read back from the database into
// typed attribute values. Unknown attributes are ignored.
func (t *EntityType) DecodeAttributes(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for name, v := range raw {
		kind, ok := t.attributes[name]
		if !ok || v == nil {
			continue
		}
		if kind == KindBlob {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s.%s: blob is not base64 text", ErrAttributeTypeMismatch, t.Name, name)
			}
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %s.%s: %w", ErrAttributeTypeMismatch, t.Name, name, err)
			}
			out[name] = b
			continue
		}
		coerced, err := coerce(kind, v)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.Name, name, err)
		}
		out[name] = coerced
	}
	return out, nil
}

func setterFor(attr string, kind AttributeKind) (Setter, error) {
	switch kind {
	case KindString, KindInteger, KindFloat, KindBool, KindDate, KindBlob, KindJSON:
	default:
		return nil, fmt.Errorf("unknown attribute kind %q", kind)
	}

	return func(e *models.Entity, v any) error {
		if v == nil {
			e.UnsetAttribute(attr)
			return nil
		}
		coerced, err := coerce(kind, v)
		if err != nil {
			return fmt.Errorf("%s: %w", attr, err)
		}
		e.SetAttribute(attr, coerced)
		return nil
	}, nil
}

func coerce(kind AttributeKind, v any) (any, error) {
	switch kind {
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindInteger:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			if n == math.Trunc(n) {
				return int64(n), nil
			}
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
		case string:
			if i, err := strconv.ParseInt(n, 10, 64); err == nil {
				return i, nil
			}
		}
	case KindFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f, nil
			}
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindDate:
		switch d := v.(type) {
		case time.Time:
			return d.UTC(), nil
		case string:
			for _, layout := range dateLayouts {
				if parsed, err := time.Parse(layout, d); err == nil {
					return parsed.UTC(), nil
				}
			}
		}
	case KindBlob:
		if b, ok := v.([]byte); ok {
			return b, nil
		}
	case KindJSON:
		return normalizeJSON(v), nil
	}

	return nil, fmt.Errorf("%w: %T is not assignable to %s", ErrAttributeTypeMismatch, v, kind)
}

// normalizeJSON converts json.Number leaves produced by the database decoder
// back into float64 so JSON attributes compare equal after a round trip.
func normalizeJSON(v any) any {
	switch val := v.(type) {
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return val.String()
		}
		return f
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = normalizeJSON(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, inner := range val {
			out = append(out, normalizeJSON(inner))
		}
		return out
	default:
		return v
	}
}

// Schema is the set of entity types known to the store.
type Schema struct {
	types map[string]*EntityType
}

// NewSchema builds a schema from entity type descriptors. Type names must be
// unique.
func NewSchema(types ...*EntityType) (*Schema, error) {
	s := &Schema{types: make(map[string]*EntityType, len(types))}
	for _, t := range types {
		if t == nil {
			return nil, fmt.Errorf("%w: nil entity type", ErrInvalidSchema)
		}
		if _, dup := s.types[t.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEntityType, t.Name)
		}
		s.types[t.Name] = t
	}
	return s, nil
}

// Type returns the descriptor of the named entity type.
func (s *Schema) Type(name string) (*EntityType, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Names returns the sorted entity type names.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
