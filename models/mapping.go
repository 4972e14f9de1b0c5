// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "maps"

// Mapping maps local attribute names to remote dotted field paths.
type Mapping map[string]string

// Clone returns an independent copy of m.
func (m Mapping) Clone() Mapping {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

// TypeMapping binds a remote content type to a local entity type. A nil
// Mapping means "derive it from the first record".
type TypeMapping struct {
	EntityType string  `json:"entity_type" yaml:"entity_type"`
	Mapping    Mapping `json:"mapping,omitempty" yaml:"mapping,omitempty"`
}
