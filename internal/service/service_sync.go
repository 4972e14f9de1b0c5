// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-content-mirror/internal/adapter"
	"github.com/MKhiriev/go-content-mirror/internal/logger"
	"github.com/MKhiriev/go-content-mirror/internal/mapper"
	"github.com/MKhiriev/go-content-mirror/internal/registry"
	"github.com/MKhiriev/go-content-mirror/internal/store"
	"github.com/MKhiriev/go-content-mirror/internal/utils"
	"github.com/MKhiriev/go-content-mirror/models"
)

// Attributes of the space entity type.
const (
	SyncTokenAttribute         = "syncToken"
	LastSyncTimestampAttribute = "lastSyncTimestamp"

	// SpaceIdentifier is the natural key of the singleton space entity.
	SpaceIdentifier = "space"

	assetMappingKey = "\x00asset"
)

// syncService is the concrete implementation of SyncService.
//
// A pass walks Idle -> FetchingDelta -> ApplyingChanges (once per page) ->
// ResolvingRelationships -> Committing -> Idle. Any failure moves it to
// Failed, discards every staged store change and leaves the persisted sync
// token untouched; the next pass starts from Failed as it would from Idle.
type syncService struct {
	source   adapter.ContentSource
	repo     store.Repository
	registry *registry.Registry
	filter   models.SyncFilter

	mappings     *mapper.Cache
	materializer *Materializer
	resolver     *Resolver
	ids          *utils.UUIDGenerator
	now          func() time.Time

	running atomic.Bool

	mu         sync.RWMutex
	state      models.SyncState
	lastReport *models.SyncReport

	logger *logger.Logger
}

// NewSyncService constructs the sync orchestrator. filter narrows initial
// passes; delta passes inherit it from the stored token.
func NewSyncService(source adapter.ContentSource, repo store.Repository, reg *registry.Registry, filter models.SyncFilter, logger *logger.Logger) SyncService {
	return &syncService{
		source:       source,
		repo:         repo,
		registry:     reg,
		filter:       filter,
		mappings:     mapper.NewCache(),
		materializer: NewMaterializer(repo),
		resolver:     NewResolver(repo, reg),
		ids:          utils.NewUUIDGenerator(),
		now:          time.Now,
		state:        models.SyncStateIdle,
		logger:       logger,
	}
}

// SyncWithCallback implements SyncService.
func (s *syncService) SyncWithCallback(ctx context.Context, onComplete func(success bool)) {
	if err := s.StartSync(ctx, onComplete); err != nil && onComplete != nil {
		go onComplete(false)
	}
}

// StartSync implements SyncService. The in-progress guard is taken before
// returning, so a rejected start is reported to the caller directly.
func (s *syncService) StartSync(ctx context.Context, onComplete func(success bool)) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}

	go func() {
		err := s.run(ctx)
		s.running.Store(false)
		if onComplete != nil {
			onComplete(err == nil)
		}
	}()
	return nil
}

// Status implements SyncService.
func (s *syncService) Status() models.SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := models.SyncStatus{State: s.state}
	if s.lastReport != nil {
		report := *s.lastReport
		status.LastReport = &report
	}
	return status
}

// Sync implements SyncService.
func (s *syncService) Sync(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer s.running.Store(false)

	return s.run(ctx)
}

// run executes one pass. The caller holds the in-progress guard.
func (s *syncService) run(ctx context.Context) error {
	passID := s.ids.Generate()
	log := s.logger.WithPassID(passID)
	ctx = utils.WithPassID(log.WithContext(ctx), passID)

	report := models.SyncReport{PassID: passID, StartedAt: s.now()}

	err := s.pass(ctx, &report)

	report.FinishedAt = s.now()
	report.Duration = report.FinishedAt.Sub(report.StartedAt)
	report.Success = err == nil

	if err != nil {
		s.repo.Discard()
		s.resolver.Reset()
		report.Error = err.Error()
		s.finish(models.SyncStateFailed, report)

		log.Err(err).
			Str("func", "syncService.run").
			Int("pages", report.Pages).
			Msg("sync pass failed, staged changes discarded")
		return err
	}

	s.finish(models.SyncStateIdle, report)

	log.Info().
		Str("func", "syncService.run").
		Bool("initial", report.Initial).
		Int("pages", report.Pages).
		Int("created", report.Created).
		Int("updated", report.Updated).
		Int("deleted", report.Deleted).
		Int("skipped", report.Skipped).
		Int("resolved_links", report.Resolved).
		Int("dropped_links", report.Dropped).
		Dur("duration", report.Duration).
		Msg("sync pass committed")
	return nil
}

func (s *syncService) pass(ctx context.Context, report *models.SyncReport) error {
	if err := s.validate(); err != nil {
		return err
	}
	s.resolver.Reset()

	space, err := s.space(ctx)
	if err != nil {
		return err
	}
	token, _ := space.StringAttribute(SyncTokenAttribute)
	report.Initial = token == ""
	report.SyncToken = token

	var page models.DeltaPage
	next := token
	for {
		if err = ctx.Err(); err != nil {
			return err
		}

		s.setState(models.SyncStateFetchingDelta)
		if report.Initial && report.Pages == 0 {
			page, err = s.source.FetchInitial(ctx, s.filter)
		} else {
			page, err = s.source.FetchDelta(ctx, next, s.filter)
		}
		if err != nil {
			return fmt.Errorf("fetch page %d: %w", report.Pages+1, err)
		}
		report.Pages++

		s.setState(models.SyncStateApplyingChanges)
		if err = s.applyPage(ctx, page, report); err != nil {
			return err
		}

		if !page.HasMore() {
			break
		}
		next = page.NextPageToken
	}
	if page.NextSyncToken == "" {
		return ErrNoSyncToken
	}

	if err = ctx.Err(); err != nil {
		return err
	}
	s.setState(models.SyncStateResolvingRelationships)
	stats, err := s.resolver.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("resolve relationships: %w", err)
	}
	report.Resolved = stats.Resolved
	report.Dropped = stats.Dropped

	if err = ctx.Err(); err != nil {
		return err
	}
	s.setState(models.SyncStateCommitting)
	if err = s.stampSpace(space, page.NextSyncToken); err != nil {
		return err
	}
	if err = s.repo.Save(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	report.SyncToken = page.NextSyncToken

	return nil
}

// validate checks the registry against the store schema before any network
// call is made.
func (s *syncService) validate() error {
	if err := s.registry.Validate(); err != nil {
		return err
	}

	for _, entityType := range s.registry.EntityTypes() {
		if _, err := s.repo.EntityType(entityType); err != nil {
			return fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
		}
	}

	properties, err := s.repo.PropertiesFor(s.registry.SpaceType())
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownEntityType, s.registry.SpaceType())
	}
	if !slices.Contains(properties, SyncTokenAttribute) {
		return fmt.Errorf("%w: %s", ErrSpaceWithoutSyncToken, s.registry.SpaceType())
	}

	return nil
}

// space returns the singleton space entity, staging it on first access.
func (s *syncService) space(ctx context.Context) (*models.Entity, error) {
	spaceType := s.registry.SpaceType()

	found, err := s.repo.FetchAll(ctx, spaceType, store.MatchAll())
	if err != nil {
		return nil, fmt.Errorf("fetch space: %w", err)
	}
	if len(found) > 0 {
		return found[0], nil
	}

	space, err := s.repo.Create(ctx, spaceType)
	if err != nil {
		return nil, fmt.Errorf("create space: %w", err)
	}
	space.SetIdentifier(SpaceIdentifier)
	return space, nil
}

func (s *syncService) stampSpace(space *models.Entity, token string) error {
	descriptor, err := s.repo.EntityType(space.Type)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownEntityType, err)
	}

	if err = descriptor.Set(space, SyncTokenAttribute, token); err != nil {
		return fmt.Errorf("set sync token: %w", err)
	}
	if _, ok := descriptor.AttributeKind(LastSyncTimestampAttribute); ok {
		if err = descriptor.Set(space, LastSyncTimestampAttribute, s.now().UTC()); err != nil {
			return fmt.Errorf("set last sync timestamp: %w", err)
		}
	}
	return nil
}

// applyPage applies one page. Store failures of a single record are logged
// and counted as skipped; configuration errors abort the pass.
func (s *syncService) applyPage(ctx context.Context, page models.DeltaPage, report *models.SyncReport) error {
	log := logger.FromContext(ctx)

	for _, entry := range page.Entries {
		if err := s.applyEntry(ctx, entry, report); err != nil {
			if isConfigError(err) {
				return err
			}
			report.Skipped++
			log.Warn().Err(err).
				Str("func", "syncService.applyPage").
				Str("entry", entry.Identifier).
				Str("content_type", entry.ContentTypeID).
				Msg("entry skipped")
		}
	}

	for _, asset := range page.Assets {
		if err := s.applyAsset(ctx, asset, report); err != nil {
			if isConfigError(err) {
				return err
			}
			report.Skipped++
			log.Warn().Err(err).
				Str("func", "syncService.applyPage").
				Str("asset", asset.Identifier).
				Msg("asset skipped")
		}
	}

	if report.Initial {
		if n := len(page.DeletedEntries) + len(page.DeletedAssets); n > 0 {
			log.Debug().
				Str("func", "syncService.applyPage").
				Int("deletions", n).
				Msg("ignoring deletions on initial pass")
		}
		return nil
	}

	entryTypes := s.registry.EntryTypes()
	for _, id := range page.DeletedEntries {
		if err := s.delete(ctx, id, entryTypes...); err != nil {
			report.Skipped++
			log.Warn().Err(err).Str("func", "syncService.applyPage").Str("entry", id).Msg("entry deletion skipped")
			continue
		}
		report.Deleted++
	}

	assetType := s.registry.AssetType().EntityType
	for _, id := range page.DeletedAssets {
		if err := s.delete(ctx, id, assetType); err != nil {
			report.Skipped++
			log.Warn().Err(err).Str("func", "syncService.applyPage").Str("asset", id).Msg("asset deletion skipped")
			continue
		}
		report.Deleted++
	}

	return nil
}

func (s *syncService) applyEntry(ctx context.Context, entry models.Entry, report *models.SyncReport) error {
	tm, ok := s.registry.EntryType(entry.ContentTypeID)
	if !ok {
		return fmt.Errorf("content type %q is not registered", entry.ContentTypeID)
	}

	mapping := s.mappings.Resolve(entry.ContentTypeID, tm.Mapping, func() models.Mapping {
		properties, err := s.repo.PropertiesFor(tm.EntityType)
		if err != nil {
			return nil
		}
		return mapper.DeriveMapping(entry.Fields, properties)
	})
	if tm.Mapping == nil && len(mapping) == 0 {
		return fmt.Errorf("%w: no field of entry %s (%s) maps onto %s", ErrEmptyMapping, entry.Identifier, entry.ContentTypeID, tm.EntityType)
	}

	entity, err := s.materialize(ctx, entry.Identifier, entry.Fields, tm.EntityType, mapping, report)
	if entity == nil {
		return err
	}
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "syncService.applyEntry").
			Str("entry", entry.Identifier).
			Msg("some fields were rejected")
	}

	return s.resolver.Collect(entry, tm.EntityType, mapping)
}

func (s *syncService) applyAsset(ctx context.Context, asset models.Asset, report *models.SyncReport) error {
	tm := s.registry.AssetType()

	mapping := s.mappings.Resolve(assetMappingKey, tm.Mapping, func() models.Mapping {
		properties, err := s.repo.PropertiesFor(tm.EntityType)
		if err != nil {
			return nil
		}
		return mapper.DeriveAssetMapping(asset.Fields, properties)
	})
	if tm.Mapping == nil && len(mapping) == 0 {
		return fmt.Errorf("%w: no field of asset %s maps onto %s", ErrEmptyMapping, asset.Identifier, tm.EntityType)
	}

	entity, err := s.materialize(ctx, asset.Identifier, asset.Fields, tm.EntityType, mapping, report)
	if entity == nil {
		return err
	}
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "syncService.applyAsset").
			Str("asset", asset.Identifier).
			Msg("some fields were rejected")
	}
	return nil
}

// materialize wraps Materializer.Materialize with report bookkeeping. A
// non-nil entity with a non-nil error means the entity was applied partially.
func (s *syncService) materialize(ctx context.Context, identifier string, fields models.Fields, entityType string, mapping models.Mapping, report *models.SyncReport) (*models.Entity, error) {
	entity, created, err := s.materializer.Materialize(ctx, identifier, fields, entityType, mapping)
	if entity == nil {
		return nil, err
	}

	switch {
	case created:
		report.Created++
	case entity.IsDirty():
		report.Updated++
	}
	return entity, err
}

func (s *syncService) delete(ctx context.Context, identifier string, entityTypes ...string) error {
	var errs []error
	for _, entityType := range entityTypes {
		if err := s.repo.Delete(ctx, entityType, store.ByIdentifier(identifier)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *syncService) setState(state models.SyncState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *syncService) finish(state models.SyncState, report models.SyncReport) {
	s.mu.Lock()
	s.state = state
	s.lastReport = &report
	s.mu.Unlock()
}
