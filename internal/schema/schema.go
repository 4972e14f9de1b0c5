// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package schema loads the YAML file that declares local entity types and
// binds remote content types to them.
//
// Example:
//
//	types:
//	  - name: Post
//	    attributes:
//	      title: string
//	      tags: blob
//	    relationships:
//	      author: to_one
//	  - name: Space
//	    attributes:
//	      syncToken: string
//	entries:
//	  - content_type: blogPost
//	    entity_type: Post
//	    mapping:
//	      title: headline
//	asset:
//	  entity_type: Asset
//	space:
//	  entity_type: Space
package schema

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-content-mirror/internal/registry"
	"github.com/MKhiriev/go-content-mirror/internal/store"
	"github.com/MKhiriev/go-content-mirror/models"
)

var (
	ErrReadingSchema = errors.New("error reading schema file")
	ErrParsingSchema = errors.New("error parsing schema file")
)

// File is the on-disk layout of the schema file.
type File struct {
	Types   []TypeDecl          `yaml:"types"`
	Entries []EntryRegistration `yaml:"entries"`
	Asset   *models.TypeMapping `yaml:"asset"`
	Space   *SpaceRegistration  `yaml:"space"`
}

// TypeDecl declares one local entity type.
type TypeDecl struct {
	Name          string                         `yaml:"name"`
	Attributes    map[string]store.AttributeKind `yaml:"attributes"`
	Relationships map[string]store.Cardinality   `yaml:"relationships"`
}

// EntryRegistration binds a remote content type to a local entity type.
type EntryRegistration struct {
	ContentType string         `yaml:"content_type"`
	EntityType  string         `yaml:"entity_type"`
	Mapping     models.Mapping `yaml:"mapping"`
}

// SpaceRegistration names the entity type of the space record.
type SpaceRegistration struct {
	EntityType string `yaml:"entity_type"`
}

// Definition is a loaded and validated schema file.
type Definition struct {
	Schema   *store.Schema
	Registry *registry.Registry
}

// Load reads and builds the schema file at path.
func Load(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingSchema, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a schema document and builds the store schema and the type
// registry from it. Unknown keys are rejected.
func Parse(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsingSchema, err)
	}

	return file.Build()
}

// Build turns the declarations into a store schema and a frozen registry.
func (f File) Build() (*Definition, error) {
	types := make([]*store.EntityType, 0, len(f.Types))
	for _, decl := range f.Types {
		et, err := store.NewEntityType(decl.Name, decl.Attributes, decl.Relationships)
		if err != nil {
			return nil, err
		}
		types = append(types, et)
	}

	storeSchema, err := store.NewSchema(types...)
	if err != nil {
		return nil, err
	}

	builder := registry.NewBuilder()
	for _, entry := range f.Entries {
		builder.RegisterEntryType(entry.ContentType, entry.EntityType, entry.Mapping)
	}
	if f.Asset != nil {
		builder.RegisterAssetType(f.Asset.EntityType, f.Asset.Mapping)
	}
	if f.Space != nil {
		builder.RegisterSpaceType(f.Space.EntityType)
	}

	reg, err := builder.Build()
	if err != nil {
		return nil, err
	}

	for _, name := range reg.EntityTypes() {
		if _, ok := storeSchema.Type(name); !ok {
			return nil, fmt.Errorf("%w: %s is registered but not declared", store.ErrUnknownEntityType, name)
		}
	}

	return &Definition{Schema: storeSchema, Registry: reg}, nil
}
