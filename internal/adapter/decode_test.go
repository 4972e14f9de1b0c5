// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-content-mirror/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mixedPage = `{
  "sys": {"type": "Array"},
  "items": [
    {
      "sys": {
        "type": "Entry", "id": "post-1", "revision": 3,
        "updatedAt": "2026-01-02T03:04:05Z",
        "contentType": {"sys": {"type": "Link", "linkType": "ContentType", "id": "blogPost"}}
      },
      "fields": {
        "title":   {"en-US": "Hello", "de-DE": "Hallo"},
        "views":   {"en-US": 42},
        "tags":    {"en-US": ["go", "sync"]},
        "author":  {"en-US": {"sys": {"type": "Link", "linkType": "Entry", "id": "author-1"}}},
        "related": {"en-US": [
          {"sys": {"type": "Link", "linkType": "Entry", "id": "post-2"}},
          {"sys": {"type": "Link", "linkType": "Entry", "id": "post-3"}}
        ]},
        "meta":    {"en-US": {"lat": 1.5, "lon": 2.5}},
        "subtitle": {"de-DE": "nur deutsch"},
        "summary": {"en-US": null}
      }
    },
    {
      "sys": {"type": "Asset", "id": "asset-1", "revision": 1},
      "fields": {
        "title": {"en-US": "Logo"},
        "file": {"en-US": {
          "url": "//images.example.com/logo.png",
          "contentType": "image/png",
          "details": {"size": 1024, "image": {"width": 64, "height": 32}}
        }}
      }
    },
    {"sys": {"type": "DeletedEntry", "id": "post-9"}},
    {"sys": {"type": "DeletedAsset", "id": "asset-9"}},
    {"sys": {"type": "ContentType", "id": "ignored"}}
  ],
  "nextPageUrl": "https://cdn.example.com/spaces/sp1/sync?sync_token=page-2"
}`

func TestDecodePage_Mixed(t *testing.T) {
	page, err := decodePage([]byte(mixedPage), "en-US")
	require.NoError(t, err)

	assert.Equal(t, "page-2", page.NextPageToken)
	assert.Empty(t, page.NextSyncToken)
	assert.Equal(t, []string{"post-9"}, page.DeletedEntries)
	assert.Equal(t, []string{"asset-9"}, page.DeletedAssets)

	require.Len(t, page.Entries, 1)
	entry := page.Entries[0]
	assert.Equal(t, "post-1", entry.Identifier)
	assert.Equal(t, "blogPost", entry.ContentTypeID)
	assert.Equal(t, int64(3), entry.Revision)
	require.NotNil(t, entry.UpdatedAt)
	assert.True(t, entry.UpdatedAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))

	assert.Equal(t, models.Scalar("Hello"), entry.Fields["title"])
	assert.Equal(t, models.Scalar(float64(42)), entry.Fields["views"])
	assert.Equal(t, models.Sequence("go", "sync"), entry.Fields["tags"])
	assert.Equal(t, models.FieldValue{Kind: models.KindLink, Link: models.Link{ID: "author-1", LinkType: "Entry"}}, entry.Fields["author"])

	related := entry.Fields["related"]
	assert.Equal(t, models.KindLinkSequence, related.Kind)
	assert.Equal(t, []models.Link{{ID: "post-2", LinkType: "Entry"}, {ID: "post-3", LinkType: "Entry"}}, related.Links)

	meta := entry.Fields["meta"]
	assert.Equal(t, models.KindNested, meta.Kind)
	assert.Equal(t, models.Scalar(1.5), meta.Nested["lat"])

	_, hasSubtitle := entry.Fields["subtitle"]
	assert.False(t, hasSubtitle, "field without a value for the locale is omitted")
	assert.Equal(t, models.Null(), entry.Fields["summary"])

	require.Len(t, page.Assets, 1)
	asset := page.Assets[0]
	assert.Equal(t, "asset-1", asset.Identifier)
	url, ok := asset.Fields.Lookup("file.url")
	require.True(t, ok)
	assert.Equal(t, models.Scalar("//images.example.com/logo.png"), url)
	width, ok := asset.Fields.Lookup("file.details.image.width")
	require.True(t, ok)
	assert.Equal(t, models.Scalar(float64(64)), width)
}

func TestDecodePage_OtherLocale(t *testing.T) {
	page, err := decodePage([]byte(mixedPage), "de-DE")
	require.NoError(t, err)

	require.Len(t, page.Entries, 1)
	fields := page.Entries[0].Fields
	assert.Equal(t, models.Scalar("Hallo"), fields["title"])
	assert.Equal(t, models.Scalar("nur deutsch"), fields["subtitle"])
	_, hasViews := fields["views"]
	assert.False(t, hasViews)
}

func TestDecodePage_SyncURL(t *testing.T) {
	page, err := decodePage([]byte(`{"items":[],"nextSyncUrl":"https://cdn.example.com/spaces/sp1/sync?sync_token=abc%3D"}`), "en-US")

	require.NoError(t, err)
	assert.Equal(t, "abc=", page.NextSyncToken)
	assert.False(t, page.HasMore())
}

func TestDecodePage_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{`},
		{name: "no continuation", body: `{"items":[]}`},
		{name: "url without token", body: `{"items":[],"nextSyncUrl":"https://cdn.example.com/sync"}`},
		{name: "item without id", body: `{"items":[{"sys":{"type":"Entry"}}],"nextSyncUrl":"https://x/sync?sync_token=t"}`},
		{name: "entry without content type", body: `{"items":[{"sys":{"type":"Entry","id":"e1"}}],"nextSyncUrl":"https://x/sync?sync_token=t"}`},
		{name: "unlocalized field", body: `{"items":[{"sys":{"type":"Asset","id":"a1"},"fields":{"title":"plain"}}],"nextSyncUrl":"https://x/sync?sync_token=t"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodePage([]byte(tt.body), "en-US")
			assert.ErrorIs(t, err, ErrMalformedPage)
		})
	}
}

func TestDecodeValue_MixedArrayIsSequence(t *testing.T) {
	v := decodeValue([]any{
		map[string]any{"sys": map[string]any{"type": "Link", "id": "a"}},
		"plain",
	})

	assert.Equal(t, models.KindSequence, v.Kind)
	assert.Len(t, v.Sequence, 2)
}

func TestDecodeValue_EmptyArray(t *testing.T) {
	v := decodeValue([]any{})

	assert.Equal(t, models.KindSequence, v.Kind)
	assert.Empty(t, v.Sequence)
}

func TestDecodeValue_ObjectWithNonLinkSys(t *testing.T) {
	v := decodeValue(map[string]any{"sys": map[string]any{"type": "Entry", "id": "x"}})

	assert.Equal(t, models.KindNested, v.Kind)
}

func TestDecodePage_BareLinks(t *testing.T) {
	body := `{
  "items": [{
    "sys": {"type": "Entry", "id": "post-1", "contentType": {"sys": {"id": "blogPost"}}},
    "fields": {
      "author": {"en-US": {"sys": {"id": "B1"}}},
      "tags":   {"en-US": [{"sys": {"id": "T1"}}, {"sys": {"id": "T2"}}]}
    }
  }],
  "nextSyncUrl": "https://cdn.example.com/spaces/sp1/sync?sync_token=t"
}`

	page, err := decodePage([]byte(body), "en-US")
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)

	fields := page.Entries[0].Fields
	assert.Equal(t, models.FieldValue{Kind: models.KindLink, Link: models.Link{ID: "B1"}}, fields["author"])
	assert.Equal(t, models.FieldValue{
		Kind:  models.KindLinkSequence,
		Links: []models.Link{{ID: "T1"}, {ID: "T2"}},
	}, fields["tags"])
}

func TestDecodeValue_SysWithoutID(t *testing.T) {
	v := decodeValue(map[string]any{"sys": map[string]any{"type": "Link"}})

	assert.Equal(t, models.KindNested, v.Kind)
}
