// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// FieldKind tags the shape of a decoded remote field value.
type FieldKind int

const (
	// KindNull is an explicit JSON null or a missing value.
	KindNull FieldKind = iota
	// KindScalar is a string, number or boolean.
	KindScalar
	// KindSequence is an array of scalars (e.g. a multi-select symbol list).
	KindSequence
	// KindLink is a single reference to another record.
	KindLink
	// KindLinkSequence is an ordered array of references.
	KindLinkSequence
	// KindNested is an object that is not a link (location, asset file, JSON field).
	KindNested
)

func (k FieldKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindLink:
		return "link"
	case KindLinkSequence:
		return "link_sequence"
	case KindNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Link is an unresolved reference to another record, identified by its
// remote identifier. LinkType is "Entry" or "Asset" when the source says so.
type Link struct {
	ID       string `json:"id"`
	LinkType string `json:"link_type,omitempty"`
}

// FieldValue is a tagged variant produced by the content source decoder.
// Exactly one of the payload fields is meaningful, selected by Kind.
type FieldValue struct {
	Kind     FieldKind
	Scalar   any
	Sequence []any
	Link     Link
	Links    []Link
	Nested   Fields
}

// Fields is a flat dictionary of remote field values keyed by field name.
type Fields map[string]FieldValue

// Null returns a null field value.
func Null() FieldValue {
	return FieldValue{Kind: KindNull}
}

// Scalar wraps a string, number or boolean.
func Scalar(v any) FieldValue {
	if v == nil {
		return Null()
	}
	return FieldValue{Kind: KindScalar, Scalar: v}
}

// Sequence wraps an array of scalars.
func Sequence(values ...any) FieldValue {
	return FieldValue{Kind: KindSequence, Sequence: values}
}

// LinkTo wraps a single link to the record with the given identifier.
func LinkTo(id string) FieldValue {
	return FieldValue{Kind: KindLink, Link: Link{ID: id}}
}

// LinksTo wraps an ordered list of links.
func LinksTo(ids ...string) FieldValue {
	links := make([]Link, 0, len(ids))
	for _, id := range ids {
		links = append(links, Link{ID: id})
	}
	return FieldValue{Kind: KindLinkSequence, Links: links}
}

// Nested wraps a sub-object.
func Nested(fields Fields) FieldValue {
	return FieldValue{Kind: KindNested, Nested: fields}
}

// IsLink reports whether the value is a single link or a list of links.
func (v FieldValue) IsLink() bool {
	return v.Kind == KindLink || v.Kind == KindLinkSequence
}

// Interface converts the value back into plain Go values
// (string, float64, bool, []any, map[string]any). Links become their ids.
func (v FieldValue) Interface() any {
	switch v.Kind {
	case KindScalar:
		return v.Scalar
	case KindSequence:
		return v.Sequence
	case KindLink:
		return v.Link.ID
	case KindLinkSequence:
		ids := make([]any, 0, len(v.Links))
		for _, l := range v.Links {
			ids = append(ids, l.ID)
		}
		return ids
	case KindNested:
		out := make(map[string]any, len(v.Nested))
		for k, nested := range v.Nested {
			out[k] = nested.Interface()
		}
		return out
	default:
		return nil
	}
}

// Lookup resolves a dot-delimited path ("file.details.image.width") against
// nested objects. It reports false if any segment is missing or a
// non-terminal segment is not a nested object.
func (f Fields) Lookup(path string) (FieldValue, bool) {
	head, rest, nested := strings.Cut(path, ".")
	v, ok := f[head]
	if !ok {
		return FieldValue{}, false
	}
	if !nested {
		return v, true
	}
	if v.Kind != KindNested {
		return FieldValue{}, false
	}
	return v.Nested.Lookup(rest)
}

// Names returns the top-level field names.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	return names
}
