// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-content-mirror/internal/logger"
	"github.com/MKhiriev/go-content-mirror/migrations"
)

// Dialect names understood by goose and by the query builder.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// DB wraps a database connection together with the dialect specific pieces
// the SQL backend needs.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate brings the schema up to date.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Dialect returns the dialect the connection was opened with.
func (db *DB) Dialect() string {
	return db.dialect
}

// statementBuilder returns a squirrel builder with the placeholder format of
// the dialect.
func (db *DB) statementBuilder() sq.StatementBuilderType {
	if db.dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}
