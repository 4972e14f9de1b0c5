// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-content-mirror/models"
)

func TestDeriveMapping(t *testing.T) {
	fields := models.Fields{
		"title":  models.Scalar("x"),
		"body":   models.Scalar("y"),
		"remote": models.Scalar("z"),
	}

	got := DeriveMapping(fields, []string{"title", "body", "localOnly"})
	assert.Equal(t, models.Mapping{"title": "title", "body": "body"}, got)

	assert.Empty(t, DeriveMapping(fields, nil))
}

func TestDeriveAssetMapping(t *testing.T) {
	fields := models.Fields{
		"title": models.Scalar("Cover"),
		"file": models.Nested(models.Fields{
			"url":         models.Scalar("//assets.example.com/x.jpg"),
			"contentType": models.Scalar("image/jpeg"),
			"title":       models.Scalar("shadowed by top-level title"),
			"details": models.Nested(models.Fields{
				"size": models.Scalar(float64(1024)),
				"image": models.Nested(models.Fields{
					"width":  models.Scalar(float64(640)),
					"height": models.Scalar(float64(480)),
				}),
			}),
		}),
	}
	properties := []string{"title", "url", "contentType", "width", "height", "size"}

	got := DeriveAssetMapping(fields, properties)

	assert.Equal(t, models.Mapping{
		"title":       "title",
		"url":         "file.url",
		"contentType": "file.contentType",
		"width":       "file.details.image.width",
		"height":      "file.details.image.height",
	}, got)
}

func TestDeriveAssetMapping_NoFile(t *testing.T) {
	fields := models.Fields{"title": models.Scalar("x"), "file": models.Scalar("not an object")}
	got := DeriveAssetMapping(fields, []string{"title", "url"})
	assert.Equal(t, models.Mapping{"title": "title"}, got)
}
