// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Schema and entity errors. Callers should use [errors.Is] to match against
// these values.
var (
	// ErrInvalidSchema is returned when an entity type descriptor is malformed
	// (empty names, unknown attribute kinds or cardinalities).
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrDuplicateEntityType is returned when two descriptors share a name.
	ErrDuplicateEntityType = errors.New("duplicate entity type")

	// ErrUnknownEntityType is returned when an operation names an entity type
	// that is not part of the schema.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrUnknownAttribute is returned when a value is assigned to an
	// attribute the entity type does not declare.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrAttributeTypeMismatch is returned by typed setters when a value
	// cannot be coerced to the attribute's native type.
	ErrAttributeTypeMismatch = errors.New("attribute type mismatch")

	// ErrEmptyIdentifier is returned by Save when a staged entity has no
	// identifier and therefore no natural key.
	ErrEmptyIdentifier = errors.New("entity has empty identifier")

	// ErrUnsupportedDSN is returned when the configured DSN selects no known
	// backend.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")
)

// Low-level database operation errors. These are returned (or wrapped) by the
// SQL backend when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan entity rows")

	// ErrDecodingAttributes is returned when the stored attribute document of
	// an entity cannot be decoded.
	ErrDecodingAttributes = errors.New("failed to decode entity attributes")
)
