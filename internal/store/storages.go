// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-content-mirror/internal/config"
	"github.com/MKhiriev/go-content-mirror/internal/logger"
)

// Storages groups the storage layer handed to the service layer.
type Storages struct {
	// Repository is the unit-of-work object store the sync engine writes into.
	Repository Repository

	// DB is the SQL connection behind Repository, nil for the in-memory
	// backend.
	DB *DB
}

// NewStorages selects a backend from cfg.DB.DSN:
//   - ":memory:" or "memory" keeps the mirror in process memory;
//   - "postgres://" and "postgresql://" open PostgreSQL through pgx;
//   - anything else is treated as an SQLite file path.
//
// SQL backends are migrated before use.
func NewStorages(ctx context.Context, cfg config.Storage, schema *Schema, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	dsn := strings.TrimSpace(cfg.DB.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("%w: empty dsn", ErrUnsupportedDSN)
	}

	if IsMemoryDSN(dsn) {
		return &Storages{Repository: NewRepository(schema, NewMemoryBackend(), logger)}, nil
	}

	var (
		db  *DB
		err error
	)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err = NewConnectPostgres(ctx, cfg.DB, logger)
	} else {
		db, err = NewConnectSQLite(ctx, cfg.DB, logger)
	}
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Repository: NewRepository(schema, NewSQLBackend(db, logger), logger),
		DB:         db,
	}, nil
}

// IsMemoryDSN reports whether dsn selects the in-memory backend.
func IsMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || dsn == "memory"
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
