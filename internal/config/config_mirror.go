// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// MirrorApp holds application-level mirror settings derived from the shared
// structured config.
type MirrorApp struct {
	// Version is reported by the status server.
	Version string
	// SchemaFile is the YAML schema declaring entity types and registrations.
	SchemaFile string
	// LogFile is the rotating log file path; empty logs to stdout.
	LogFile string
}

// MirrorSource holds settings of the remote content source adapter.
type MirrorSource struct {
	BaseURL        string
	SpaceID        string
	AccessToken    string
	Locale         string
	RequestTimeout time.Duration
	RetryCount     int
	PageLimit      int
	SyncType       string
	ContentType    string
}

// MirrorWorkers contains sync job settings.
type MirrorWorkers struct {
	// SyncInterval defines how often the sync job runs a pass.
	SyncInterval time.Duration
	// Once runs a single pass and exits.
	Once bool
}

// MirrorConfig is the top-level mirror configuration assembled from
// [StructuredConfig].
type MirrorConfig struct {
	App     MirrorApp
	Source  MirrorSource
	Storage Storage
	Server  Server
	Workers MirrorWorkers
}

// GetMirrorConfig builds and validates the mirror config view from the merged
// structured configuration.
//
// args are the command-line arguments without the program name.
func GetMirrorConfig(args []string) (*MirrorConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewMirrorConfig(cfg)
}

// NewMirrorConfig maps cfg onto a [MirrorConfig] and validates it.
func NewMirrorConfig(cfg *StructuredConfig) (*MirrorConfig, error) {
	mirrorCfg := &MirrorConfig{
		App: MirrorApp{
			Version:    cfg.App.Version,
			SchemaFile: cfg.App.SchemaFile,
			LogFile:    cfg.App.LogFile,
		},
		Source: MirrorSource{
			BaseURL:        cfg.Source.BaseURL,
			SpaceID:        cfg.Source.SpaceID,
			AccessToken:    cfg.Source.AccessToken,
			Locale:         cfg.Source.Locale,
			RequestTimeout: cfg.Source.RequestTimeout,
			RetryCount:     cfg.Source.RetryCount,
			PageLimit:      cfg.Source.PageLimit,
			SyncType:       cfg.Source.SyncType,
			ContentType:    cfg.Source.ContentType,
		},
		Storage: cfg.Storage,
		Server:  cfg.Server,
		Workers: MirrorWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
			Once:         cfg.Workers.Once,
		},
	}

	if err := mirrorCfg.validate(); err != nil {
		return nil, err
	}

	return mirrorCfg, nil
}
