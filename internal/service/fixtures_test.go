// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-content-mirror/internal/logger"
	"github.com/MKhiriev/go-content-mirror/internal/registry"
	"github.com/MKhiriev/go-content-mirror/internal/store"
	"github.com/MKhiriev/go-content-mirror/models"
	"github.com/stretchr/testify/require"
)

// ── fixtures ────────────────────────────────────────────────────────────────

const (
	postType   = "Post"
	authorType = "Author"
	imageType  = "Image"
	spaceType  = "Space"

	postContentType   = "blogPost"
	authorContentType = "person"
)

func newTestSchema(t *testing.T) *store.Schema {
	t.Helper()
	post := store.MustEntityType(postType,
		map[string]store.AttributeKind{
			"title": store.KindString,
			"body":  store.KindString,
			"views": store.KindInteger,
			"tags":  store.KindBlob,
		},
		map[string]store.Cardinality{
			"author":  store.ToOne,
			"related": store.ToMany,
			"cover":   store.ToOne,
		},
	)
	author := store.MustEntityType(authorType,
		map[string]store.AttributeKind{"name": store.KindString},
		map[string]store.Cardinality{"avatar": store.ToOne},
	)
	image := store.MustEntityType(imageType,
		map[string]store.AttributeKind{
			"title":  store.KindString,
			"url":    store.KindString,
			"width":  store.KindInteger,
			"height": store.KindInteger,
		},
		nil,
	)
	space := store.MustEntityType(spaceType,
		map[string]store.AttributeKind{
			SyncTokenAttribute:         store.KindString,
			LastSyncTimestampAttribute: store.KindDate,
		},
		nil,
	)

	schema, err := store.NewSchema(post, author, image, space)
	require.NoError(t, err)
	return schema
}

// newTestRegistry maps blogPost by derivation and person through an explicit
// mapping reading the remote "fullName" field.
func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.NewBuilder().
		RegisterEntryType(postContentType, postType, nil).
		RegisterEntryType(authorContentType, authorType, models.Mapping{"name": "fullName"}).
		RegisterAssetType(imageType, nil).
		RegisterSpaceType(spaceType).
		Build()
	require.NoError(t, err)
	return reg
}

// flakyBackend is a MemoryBackend whose Apply can be made to fail.
type flakyBackend struct {
	*store.MemoryBackend
	applyErr error
}

func (b *flakyBackend) Apply(ctx context.Context, changes store.ChangeSet) error {
	if b.applyErr != nil {
		return b.applyErr
	}
	return b.MemoryBackend.Apply(ctx, changes)
}

type testEnv struct {
	schema   *store.Schema
	backend  *flakyBackend
	repo     store.Repository
	registry *registry.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	schema := newTestSchema(t)
	backend := &flakyBackend{MemoryBackend: store.NewMemoryBackend()}
	return &testEnv{
		schema:   schema,
		backend:  backend,
		repo:     store.NewRepository(schema, backend, logger.Nop()),
		registry: newTestRegistry(t),
	}
}

// stored reads an entity straight from the backend, bypassing the unit of
// work; nil means it was never committed.
func (e *testEnv) stored(t *testing.T, entityType, identifier string) *models.Entity {
	t.Helper()
	descriptor, ok := e.schema.Type(entityType)
	require.True(t, ok)
	found, err := e.backend.Load(context.Background(), descriptor, store.ByIdentifier(identifier))
	require.NoError(t, err)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func postEntry(id string, fields models.Fields) models.Entry {
	return models.Entry{Identifier: id, ContentTypeID: postContentType, Fields: fields}
}

func authorEntry(id, name string) models.Entry {
	return models.Entry{
		Identifier:    id,
		ContentTypeID: authorContentType,
		Fields:        models.Fields{"fullName": models.Scalar(name)},
	}
}

func imageAsset(id, title, url string) models.Asset {
	return models.Asset{
		Identifier: id,
		Fields: models.Fields{
			"title": models.Scalar(title),
			"file": models.Nested(models.Fields{
				"url": models.Scalar(url),
				"details": models.Nested(models.Fields{
					"image": models.Nested(models.Fields{
						"width":  models.Scalar(float64(640)),
						"height": models.Scalar(float64(480)),
					}),
				}),
			}),
		},
	}
}

func assetLink(id string) models.FieldValue {
	return models.FieldValue{Kind: models.KindLink, Link: models.Link{ID: id, LinkType: "Asset"}}
}

func refs(entityType string, ids ...string) []models.EntityRef {
	out := make([]models.EntityRef, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.EntityRef{Type: entityType, Identifier: id})
	}
	return out
}
