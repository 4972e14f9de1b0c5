// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-content-mirror/internal/logger"
	"github.com/MKhiriev/go-content-mirror/models"
)

func newTestRepository(t *testing.T) (Repository, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend()
	return NewRepository(newTestSchema(t), backend, logger.Nop()), backend
}

// createEntity stages an entity of entityType with the given identifier.
func createEntity(t *testing.T, repo Repository, entityType, id string) *models.Entity {
	t.Helper()
	e, err := repo.Create(context.Background(), entityType)
	require.NoError(t, err)
	e.SetIdentifier(id)
	require.NoError(t, mustType(t, repo, entityType).Set(e, "identifier", id))
	return e
}

type failingBackend struct {
	*MemoryBackend
	err error
}

func (f failingBackend) Apply(context.Context, ChangeSet) error {
	return f.err
}

// ── Create / Save ─────────────────────────────────────────────────────────────

func TestObjectStore_CreateAndSave(t *testing.T) {
	repo, backend := newTestRepository(t)
	ctx := context.Background()

	post := createEntity(t, repo, postType, "p1")
	post.SetAttribute("title", "Hello")

	require.NoError(t, repo.Save(ctx))
	assert.Equal(t, 1, backend.Count(postType))
	assert.False(t, post.IsDirty())

	found, err := repo.FetchAll(ctx, postType, ByIdentifier("p1"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	title, _ := found[0].StringAttribute("title")
	assert.Equal(t, "Hello", title)
	assert.False(t, found[0].IsDirty())
}

func TestObjectStore_FetchAll_SeesStagedCreations(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	post := createEntity(t, repo, postType, "p1")

	found, err := repo.FetchAll(ctx, postType, ByIdentifier("p1"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Same(t, post, found[0])

	all, err := repo.FetchAll(ctx, postType, MatchAll())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	none, err := repo.FetchAll(ctx, authorType, MatchAll())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestObjectStore_FetchAll_IdentityMap(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	createEntity(t, repo, postType, "p1")
	require.NoError(t, repo.Save(ctx))

	first, err := repo.FetchAll(ctx, postType, ByIdentifier("p1"))
	require.NoError(t, err)
	first[0].SetAttribute("title", "changed")

	second, err := repo.FetchAll(ctx, postType, MatchAll())
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Same(t, first[0], second[0])
	assert.True(t, second[0].IsDirty())
}

func TestObjectStore_Save_DirtyLoadedEntity(t *testing.T) {
	repo, backend := newTestRepository(t)
	ctx := context.Background()

	createEntity(t, repo, postType, "p1")
	require.NoError(t, repo.Save(ctx))

	found, err := repo.FetchAll(ctx, postType, ByIdentifier("p1"))
	require.NoError(t, err)
	found[0].SetAttribute("title", "updated")
	require.NoError(t, repo.Save(ctx))

	stored, err := backend.Load(ctx, mustType(t, repo, postType), ByIdentifier("p1"))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	title, _ := stored[0].StringAttribute("title")
	assert.Equal(t, "updated", title)
}

func TestObjectStore_Save_EmptyIdentifier(t *testing.T) {
	repo, backend := newTestRepository(t)

	_, err := repo.Create(context.Background(), postType)
	require.NoError(t, err)

	err = repo.Save(context.Background())
	assert.ErrorIs(t, err, ErrEmptyIdentifier)
	assert.Zero(t, backend.Count(postType))
}

func TestObjectStore_Save_BackendError(t *testing.T) {
	boom := errors.New("disk full")
	repo := NewRepository(newTestSchema(t), failingBackend{MemoryBackend: NewMemoryBackend(), err: boom}, logger.Nop())

	createEntity(t, repo, postType, "p1")

	err := repo.Save(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestObjectStore_UnknownType(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "Comment")
	assert.ErrorIs(t, err, ErrUnknownEntityType)

	_, err = repo.FetchAll(ctx, "Comment", MatchAll())
	assert.ErrorIs(t, err, ErrUnknownEntityType)

	assert.ErrorIs(t, repo.Delete(ctx, "Comment", MatchAll()), ErrUnknownEntityType)

	_, err = repo.PropertiesFor("Comment")
	assert.ErrorIs(t, err, ErrUnknownEntityType)

	_, err = repo.RelationshipsFor("Comment")
	assert.ErrorIs(t, err, ErrUnknownEntityType)
}

func TestObjectStore_Introspection(t *testing.T) {
	repo, _ := newTestRepository(t)

	props, err := repo.PropertiesFor(authorType)
	require.NoError(t, err)
	assert.Equal(t, []string{"identifier", "name"}, props)

	rels, err := repo.RelationshipsFor(postType)
	require.NoError(t, err)
	assert.Equal(t, []string{"author", "related"}, rels)
}

// ── Delete ────────────────────────────────────────────────────────────────────

func TestObjectStore_Delete(t *testing.T) {
	repo, backend := newTestRepository(t)
	ctx := context.Background()

	createEntity(t, repo, postType, "p1")
	createEntity(t, repo, postType, "p2")
	require.NoError(t, repo.Save(ctx))

	require.NoError(t, repo.Delete(ctx, postType, ByIdentifier("p1")))

	visible, err := repo.FetchAll(ctx, postType, MatchAll())
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "p2", visible[0].Identifier)

	require.NoError(t, repo.Save(ctx))
	assert.Equal(t, 1, backend.Count(postType))
}

func TestObjectStore_Delete_StagedOnly(t *testing.T) {
	repo, backend := newTestRepository(t)
	ctx := context.Background()

	createEntity(t, repo, postType, "p1")
	require.NoError(t, repo.Delete(ctx, postType, ByIdentifier("p1")))
	require.NoError(t, repo.Save(ctx))

	assert.Zero(t, backend.Count(postType))
}

func TestObjectStore_Delete_NullifiesReferences(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	author := createEntity(t, repo, authorType, "a1")
	post := createEntity(t, repo, postType, "p1")
	post.SetToOne("author", author)
	require.NoError(t, repo.Save(ctx))

	require.NoError(t, repo.Delete(ctx, authorType, ByIdentifier("a1")))
	require.NoError(t, repo.Save(ctx))

	found, err := repo.FetchAll(ctx, postType, ByIdentifier("p1"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Empty(t, found[0].Related("author"))
}

func TestObjectStore_Delete_StripsStagedReferences(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	createEntity(t, repo, authorType, "a1")
	require.NoError(t, repo.Save(ctx))

	require.NoError(t, repo.Delete(ctx, authorType, ByIdentifier("a1")))
	post := createEntity(t, repo, postType, "p1")
	post.SetRelationRefs("author", []models.EntityRef{{Type: authorType, Identifier: "a1"}})
	require.NoError(t, repo.Save(ctx))

	found, err := repo.FetchAll(ctx, postType, ByIdentifier("p1"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Empty(t, found[0].Related("author"))
}

func TestObjectStore_DeleteThenRecreate(t *testing.T) {
	repo, backend := newTestRepository(t)
	ctx := context.Background()

	author := createEntity(t, repo, authorType, "a1")
	post := createEntity(t, repo, postType, "p1")
	post.SetToOne("author", author)
	require.NoError(t, repo.Save(ctx))

	require.NoError(t, repo.Delete(ctx, authorType, ByIdentifier("a1")))
	recreated := createEntity(t, repo, authorType, "a1")
	recreated.SetAttribute("name", "Ada")
	require.NoError(t, repo.Save(ctx))

	assert.Equal(t, 1, backend.Count(authorType))

	found, err := repo.FetchAll(ctx, postType, ByIdentifier("p1"))
	require.NoError(t, err)
	assert.Equal(t, []models.EntityRef{{Type: authorType, Identifier: "a1"}}, found[0].Related("author"))
}

// ── Discard ───────────────────────────────────────────────────────────────────

func TestObjectStore_Discard(t *testing.T) {
	repo, backend := newTestRepository(t)
	ctx := context.Background()

	createEntity(t, repo, postType, "keep")
	require.NoError(t, repo.Save(ctx))

	createEntity(t, repo, postType, "staged")
	require.NoError(t, repo.Delete(ctx, postType, ByIdentifier("keep")))
	repo.Discard()
	require.NoError(t, repo.Save(ctx))

	assert.Equal(t, 1, backend.Count(postType))
	found, err := repo.FetchAll(ctx, postType, MatchAll())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "keep", found[0].Identifier)
}

func mustType(t *testing.T, repo Repository, name string) *EntityType {
	t.Helper()
	et, err := repo.EntityType(name)
	require.NoError(t, err)
	return et
}
