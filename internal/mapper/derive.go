// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"github.com/MKhiriev/go-content-mirror/models"
)

const (
	assetFilePath  = "file"
	assetImagePath = "file.details.image"
)

// DeriveMapping maps every field name that is also a property of the local
// type onto itself.
func DeriveMapping(fields models.Fields, properties []string) models.Mapping {
	mapping := make(models.Mapping)
	for _, prop := range properties {
		if _, ok := fields[prop]; ok {
			mapping[prop] = prop
		}
	}
	return mapping
}

// DeriveAssetMapping is DeriveMapping plus the keys of the asset's "file" and
// "file.details.image" objects, which map to dotted paths
// (url -> file.url, width -> file.details.image.width). Top-level fields win
// over file keys, which win over image keys.
func DeriveAssetMapping(fields models.Fields, properties []string) models.Mapping {
	mapping := DeriveMapping(fields, properties)

	for _, prefix := range []string{assetFilePath, assetImagePath} {
		sub, ok := fields.Lookup(prefix)
		if !ok || sub.Kind != models.KindNested {
			continue
		}
		for _, prop := range properties {
			if _, mapped := mapping[prop]; mapped {
				continue
			}
			if _, ok := sub.Nested[prop]; ok {
				mapping[prop] = prefix + "." + prop
			}
		}
	}

	return mapping
}
