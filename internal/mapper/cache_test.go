// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-content-mirror/models"
)

func TestCache_ExplicitWins(t *testing.T) {
	c := NewCache()
	explicit := models.Mapping{"title": "headline"}

	got := c.Resolve("post", explicit, func() models.Mapping {
		t.Fatal("derive must not be called for explicit mappings")
		return nil
	})
	assert.Equal(t, explicit, got)
	assert.Zero(t, c.Len())
}

func TestCache_MemoizesDerived(t *testing.T) {
	c := NewCache()
	calls := 0
	derive := func() models.Mapping {
		calls++
		return models.Mapping{"title": "title"}
	}

	first := c.Resolve("post", nil, derive)
	second := c.Resolve("post", nil, derive)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Len())

	c.Reset()
	c.Resolve("post", nil, derive)
	assert.Equal(t, 2, calls)
}

func TestCache_DoesNotMemoizeEmpty(t *testing.T) {
	c := NewCache()
	calls := 0
	derive := func() models.Mapping {
		calls++
		return models.Mapping{}
	}

	c.Resolve("post", nil, derive)
	c.Resolve("post", nil, derive)

	assert.Equal(t, 2, calls)
	assert.Zero(t, c.Len())
}
