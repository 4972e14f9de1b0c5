// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"sync"

	"github.com/MKhiriev/go-content-mirror/models"
)

// Cache memoizes derived mappings per key (a content type id, or the asset
// slot) for the lifetime of a session.
type Cache struct {
	mu       sync.RWMutex
	mappings map[string]models.Mapping
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{mappings: make(map[string]models.Mapping)}
}

// Resolve returns explicit when it is set. Otherwise it returns the mapping
// memoized under key, deriving it with derive on first use. Empty derived
// mappings are not memoized, so a later record can still produce one.
func (c *Cache) Resolve(key string, explicit models.Mapping, derive func() models.Mapping) models.Mapping {
	if explicit != nil {
		return explicit
	}

	c.mu.RLock()
	cached, ok := c.mappings[key]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	derived := derive()
	if len(derived) == 0 {
		return derived
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok = c.mappings[key]; ok {
		return cached
	}
	c.mappings[key] = derived
	return derived
}

// Len returns the number of memoized mappings.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.mappings)
}

// Reset forgets every memoized mapping.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.mappings = make(map[string]models.Mapping)
	c.mu.Unlock()
}
