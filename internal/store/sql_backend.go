// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-content-mirror/internal/logger"
	"github.com/MKhiriev/go-content-mirror/models"
)

const (
	defaultApplyRetries = 3
	defaultRetryBase    = 100 * time.Millisecond
)

// SQLBackend persists entities in two tables: one row per entity with its
// attributes as a JSON document, and one row per relationship target.
type SQLBackend struct {
	db     *DB
	logger *logger.Logger

	maxRetries uint64
	retryBase  time.Duration
}

// NewSQLBackend returns a backend over an opened and migrated database.
func NewSQLBackend(db *DB, logger *logger.Logger) *SQLBackend {
	return &SQLBackend{
		db:         db,
		logger:     logger,
		maxRetries: defaultApplyRetries,
		retryBase:  defaultRetryBase,
	}
}

func (b *SQLBackend) Load(ctx context.Context, entityType *EntityType, p Predicate) ([]*models.Entity, error) {
	log := logger.FromContext(ctx)
	where := entityWhere(entityType.Name, p)

	query, args, err := b.db.statementBuilder().
		Select(colIdentifier, colAttributes).
		From(entitiesTable).
		Where(where).
		OrderBy(colIdentifier).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "SQLBackend.Load").
			Str("entity_type", entityType.Name).
			Msg("failed to execute query for loading entities")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entities []*models.Entity
	byID := make(map[string]*models.Entity)

	for rows.Next() {
		var id, document string
		if err = rows.Scan(&id, &document); err != nil {
			log.Err(err).
				Str("func", "SQLBackend.Load").
				Str("entity_type", entityType.Name).
				Msg("failed to scan entity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		e, decodeErr := decodeEntity(entityType, id, document)
		if decodeErr != nil {
			log.Err(decodeErr).
				Str("func", "SQLBackend.Load").
				Str("entity_type", entityType.Name).
				Str("identifier", id).
				Msg("failed to decode entity attributes")
			return nil, decodeErr
		}

		entities = append(entities, e)
		byID[id] = e
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if len(entities) == 0 || len(entityType.Relationships()) == 0 {
		return entities, nil
	}

	if err = b.loadRelations(ctx, entityType, where, byID); err != nil {
		return nil, err
	}
	for _, e := range entities {
		e.MarkClean()
	}

	return entities, nil
}

func (b *SQLBackend) loadRelations(ctx context.Context, entityType *EntityType, where sq.Sqlizer, byID map[string]*models.Entity) error {
	query, args, err := b.db.statementBuilder().
		Select(colIdentifier, colName, colTargetType, colTargetIdentifier).
		From(relationsTable).
		Where(where).
		OrderBy(colIdentifier, colName, colPosition).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	grouped := make(map[string]map[string][]models.EntityRef)
	for rows.Next() {
		var id, name string
		var target models.EntityRef
		if err = rows.Scan(&id, &name, &target.Type, &target.Identifier); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if _, known := entityType.Cardinality(name); !known {
			continue
		}
		if grouped[id] == nil {
			grouped[id] = make(map[string][]models.EntityRef)
		}
		grouped[id][name] = append(grouped[id][name], target)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	for id, relations := range grouped {
		e, ok := byID[id]
		if !ok {
			continue
		}
		for name, refs := range relations {
			e.SetRelationRefs(name, refs)
		}
	}

	return nil
}

// Apply writes the change set in one transaction, retrying transient
// failures with exponential backoff.
func (b *SQLBackend) Apply(ctx context.Context, changes ChangeSet) error {
	if changes.Empty() {
		return nil
	}

	log := logger.FromContext(ctx)
	backoff := retry.WithMaxRetries(b.maxRetries, retry.NewExponential(b.retryBase))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := b.applyTx(ctx, changes)
		if err == nil {
			return nil
		}
		if b.db.errorClassificator != nil && b.db.errorClassificator.Classify(err) == Retryable {
			log.Warn().
				Err(err).
				Str("func", "SQLBackend.Apply").
				Int("attempt", attempt).
				Msg("retryable error while applying change set")
			return retry.RetryableError(err)
		}
		return err
	})
}

func (b *SQLBackend) applyTx(ctx context.Context, changes ChangeSet) error {
	log := logger.FromContext(ctx)

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "SQLBackend.applyTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	builder := b.db.statementBuilder()

	for _, ref := range changes.Deletes {
		if err = execStatement(ctx, tx, builder.Delete(entitiesTable).Where(refWhere(ref))); err != nil {
			return fmt.Errorf("delete %s/%s: %w", ref.Type, ref.Identifier, err)
		}
		nullify := builder.Delete(relationsTable).Where(sq.Or{
			refWhere(ref),
			sq.And{sq.Eq{colTargetType: ref.Type}, sq.Eq{colTargetIdentifier: ref.Identifier}},
		})
		if err = execStatement(ctx, tx, nullify); err != nil {
			return fmt.Errorf("delete relations of %s/%s: %w", ref.Type, ref.Identifier, err)
		}
	}

	now := time.Now().UTC()
	for _, e := range changes.Upserts {
		document, marshalErr := json.Marshal(e.Attributes())
		if marshalErr != nil {
			return fmt.Errorf("encode attributes of %s/%s: %w", e.Type, e.Identifier, marshalErr)
		}

		upsert := builder.Insert(entitiesTable).
			Columns(colEntityType, colIdentifier, colAttributes, colUpdatedAt).
			Values(e.Type, e.Identifier, string(document), now).
			Suffix(upsertEntitySuffix)
		if err = execStatement(ctx, tx, upsert); err != nil {
			return fmt.Errorf("upsert %s/%s: %w", e.Type, e.Identifier, err)
		}

		if err = execStatement(ctx, tx, builder.Delete(relationsTable).Where(refWhere(e.Ref()))); err != nil {
			return fmt.Errorf("reset relations of %s/%s: %w", e.Type, e.Identifier, err)
		}

		if insert, ok := relationsInsert(builder, e); ok {
			if err = execStatement(ctx, tx, insert); err != nil {
				return fmt.Errorf("insert relations of %s/%s: %w", e.Type, e.Identifier, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "SQLBackend.applyTx").
			Int("upserts", len(changes.Upserts)).
			Int("deletes", len(changes.Deletes)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func relationsInsert(builder sq.StatementBuilderType, e *models.Entity) (sq.InsertBuilder, bool) {
	relations := e.Relations()
	if len(relations) == 0 {
		return sq.InsertBuilder{}, false
	}

	names := make([]string, 0, len(relations))
	for name := range relations {
		names = append(names, name)
	}
	slices.Sort(names)

	insert := builder.Insert(relationsTable).
		Columns(colEntityType, colIdentifier, colName, colPosition, colTargetType, colTargetIdentifier)
	for _, name := range names {
		for pos, target := range relations[name] {
			insert = insert.Values(e.Type, e.Identifier, name, pos, target.Type, target.Identifier)
		}
	}
	return insert, true
}

func execStatement(ctx context.Context, tx *sql.Tx, stmt sq.Sqlizer) error {
	query, args, err := stmt.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func entityWhere(entityType string, p Predicate) sq.Sqlizer {
	if id, ok := p.Identifier(); ok {
		return refWhere(models.EntityRef{Type: entityType, Identifier: id})
	}
	return sq.Eq{colEntityType: entityType}
}

func refWhere(ref models.EntityRef) sq.Sqlizer {
	return sq.And{sq.Eq{colEntityType: ref.Type}, sq.Eq{colIdentifier: ref.Identifier}}
}

func decodeEntity(entityType *EntityType, id, document string) (*models.Entity, error) {
	dec := json.NewDecoder(strings.NewReader(document))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %w", ErrDecodingAttributes, entityType.Name, id, err)
	}

	attributes, err := entityType.DecodeAttributes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingAttributes, err)
	}

	e := models.NewEntity(entityType.Name)
	e.SetIdentifier(id)
	for name, v := range attributes {
		e.SetAttribute(name, v)
	}
	e.MarkClean()
	return e, nil
}
