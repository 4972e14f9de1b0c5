// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-content-mirror/internal/store"
	"github.com/MKhiriev/go-content-mirror/models"
)

func newPostType() *store.EntityType {
	return store.MustEntityType("Post",
		map[string]store.AttributeKind{
			"title":    store.KindString,
			"url":      store.KindString,
			"link":     store.KindString,
			"views":    store.KindInteger,
			"tags":     store.KindBlob,
			"keywords": store.KindJSON,
			"location": store.KindJSON,
		},
		map[string]store.Cardinality{"author": store.ToOne},
	)
}

func TestApply_AssignsScalars(t *testing.T) {
	et := newPostType()
	e := models.NewEntity(et.Name)

	fields := models.Fields{
		"headline": models.Scalar("Hello"),
		"views":    models.Scalar(float64(12)),
		"location": models.Nested(models.Fields{"lat": models.Scalar(52.5), "lon": models.Scalar(13.4)}),
	}
	mapping := models.Mapping{"title": "headline", "views": "views", "location": "location"}

	require.NoError(t, Apply(fields, mapping, e, et))

	title, _ := e.Attribute("title")
	assert.Equal(t, "Hello", title)
	views, _ := e.Attribute("views")
	assert.Equal(t, int64(12), views)
	location, _ := e.Attribute("location")
	assert.Equal(t, map[string]any{"lat": 52.5, "lon": 13.4}, location)
}

func TestApply_NormalizesProtocolRelativeURL(t *testing.T) {
	et := newPostType()

	tests := []struct {
		name string
		attr string
		in   string
		want string
	}{
		{name: "url attribute", attr: "url", in: "//images.example.com/a.png", want: "https://images.example.com/a.png"},
		{name: "absolute url untouched", attr: "url", in: "http://images.example.com/a.png", want: "http://images.example.com/a.png"},
		{name: "other attribute untouched", attr: "link", in: "//images.example.com/a.png", want: "//images.example.com/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := models.NewEntity(et.Name)
			fields := models.Fields{"src": models.Scalar(tt.in)}

			require.NoError(t, Apply(fields, models.Mapping{tt.attr: "src"}, e, et))

			got, _ := e.Attribute(tt.attr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_SequenceToBlob(t *testing.T) {
	et := newPostType()
	e := models.NewEntity(et.Name)

	fields := models.Fields{"tags": models.Sequence("go", "sync", float64(3))}
	require.NoError(t, Apply(fields, models.Mapping{"tags": "tags"}, e, et))

	blob, ok := e.Attribute("tags")
	require.True(t, ok)
	require.IsType(t, []byte{}, blob)

	decoded, err := DecodeSequence(blob.([]byte))
	require.NoError(t, err)
	assert.Equal(t, []any{"go", "sync", float64(3)}, decoded)
}

func TestApply_SequenceToJSONAttribute(t *testing.T) {
	et := newPostType()
	e := models.NewEntity(et.Name)

	fields := models.Fields{"keywords": models.Sequence("a", "b")}
	require.NoError(t, Apply(fields, models.Mapping{"keywords": "keywords"}, e, et))

	got, _ := e.Attribute("keywords")
	assert.Equal(t, []any{"a", "b"}, got)
}

func TestApply_SkipsLinksAndRelationships(t *testing.T) {
	et := newPostType()
	e := models.NewEntity(et.Name)

	fields := models.Fields{
		"author": models.LinkTo("a1"),
		"cover":  models.LinkTo("img1"),
	}
	mapping := models.Mapping{"author": "author", "title": "cover"}

	require.NoError(t, Apply(fields, mapping, e, et))

	assert.Empty(t, e.Attributes())
	assert.Empty(t, e.Relations())
}

func TestApply_AbsentPathClearsAttribute(t *testing.T) {
	et := newPostType()
	e := models.NewEntity(et.Name)
	e.SetAttribute("title", "stale")
	e.SetAttribute("views", int64(3))

	fields := models.Fields{"views": models.Null()}
	require.NoError(t, Apply(fields, models.Mapping{"title": "title", "views": "views"}, e, et))

	_, ok := e.Attribute("title")
	assert.False(t, ok)
	_, ok = e.Attribute("views")
	assert.False(t, ok)
}

func TestApply_RejectsMismatchAndContinues(t *testing.T) {
	et := newPostType()
	e := models.NewEntity(et.Name)

	fields := models.Fields{
		"title": models.Scalar(42.0),
		"views": models.Scalar(float64(7)),
	}
	err := Apply(fields, models.Mapping{"title": "title", "views": "views", "missing": "x"}, e, et)

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrAttributeTypeMismatch)
	assert.ErrorIs(t, err, store.ErrUnknownAttribute)

	views, _ := e.Attribute("views")
	assert.Equal(t, int64(7), views)
}

func TestApply_DottedPath(t *testing.T) {
	et := store.MustEntityType("Asset",
		map[string]store.AttributeKind{"url": store.KindString, "width": store.KindInteger},
		nil,
	)
	e := models.NewEntity(et.Name)

	fields := models.Fields{
		"file": models.Nested(models.Fields{
			"url": models.Scalar("//assets.example.com/x.jpg"),
			"details": models.Nested(models.Fields{
				"image": models.Nested(models.Fields{"width": models.Scalar(float64(640))}),
			}),
		}),
	}
	mapping := models.Mapping{"url": "file.url", "width": "file.details.image.width"}

	require.NoError(t, Apply(fields, mapping, e, et))

	url, _ := e.Attribute("url")
	assert.Equal(t, "https://assets.example.com/x.jpg", url)
	width, _ := e.Attribute("width")
	assert.Equal(t, int64(640), width)
}
