// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mapper copies remote field values onto local entity attributes.
package mapper

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-content-mirror/internal/store"
	"github.com/MKhiriev/go-content-mirror/models"
)

const (
	urlAttribute       = "url"
	protocolRelative   = "//"
	normalizedProtocol = "https:"
)

// Apply assigns every mapped field of fields to entity through the typed
// setters of entityType.
//
// Links are skipped, relationship names are left to the resolver, and a
// mapped path missing from fields clears the attribute. Assignment continues
// past a rejected value; all rejections are returned joined.
func Apply(fields models.Fields, mapping models.Mapping, entity *models.Entity, entityType *store.EntityType) error {
	attrs := make([]string, 0, len(mapping))
	for attr := range mapping {
		attrs = append(attrs, attr)
	}
	slices.Sort(attrs)

	var errs []error
	for _, attr := range attrs {
		if _, isRelationship := entityType.Cardinality(attr); isRelationship {
			continue
		}

		v, found := fields.Lookup(mapping[attr])
		if found && v.IsLink() {
			continue
		}

		value, err := attributeValue(attr, v, found, entityType)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", entityType.Name, attr, err))
			continue
		}

		if err = entityType.Set(entity, attr, value); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// attributeValue converts a remote field into the value handed to the
// attribute setter. nil clears the attribute.
func attributeValue(attr string, v models.FieldValue, found bool, entityType *store.EntityType) (any, error) {
	if !found {
		return nil, nil
	}

	switch v.Kind {
	case models.KindNull:
		return nil, nil
	case models.KindSequence:
		if kind, _ := entityType.AttributeKind(attr); kind == store.KindBlob {
			return EncodeSequence(v.Sequence)
		}
		return v.Sequence, nil
	case models.KindScalar:
		if s, ok := v.Scalar.(string); ok && attr == urlAttribute && strings.HasPrefix(s, protocolRelative) {
			return normalizedProtocol + s, nil
		}
		return v.Scalar, nil
	default:
		return v.Interface(), nil
	}
}
