// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-content-mirror/models"

// Predicate selects entities of one type. Only two shapes exist: "identifier
// equals X" and "match all".
type Predicate struct {
	identifier string
	all        bool
}

// ByIdentifier matches the entity whose identifier equals id.
func ByIdentifier(id string) Predicate {
	return Predicate{identifier: id}
}

// MatchAll matches every entity of the type.
func MatchAll() Predicate {
	return Predicate{all: true}
}

// Identifier returns the identifier the predicate filters on, if any.
func (p Predicate) Identifier() (string, bool) {
	if p.all {
		return "", false
	}
	return p.identifier, true
}

// Matches reports whether e satisfies the predicate.
func (p Predicate) Matches(e *models.Entity) bool {
	if p.all {
		return true
	}
	return e.Identifier == p.identifier
}

func (p Predicate) String() string {
	if p.all {
		return "*"
	}
	return "identifier=" + p.identifier
}
