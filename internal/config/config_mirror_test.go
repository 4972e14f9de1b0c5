// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStructuredConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.Source.BaseURL = "https://cdn.example.com"
	cfg.Source.SpaceID = "space-1"
	return cfg
}

func TestNewMirrorConfig_Valid(t *testing.T) {
	cfg, err := NewMirrorConfig(validStructuredConfig())
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com", cfg.Source.BaseURL)
	assert.Equal(t, "space-1", cfg.Source.SpaceID)
	assert.Equal(t, DefaultLocale, cfg.Source.Locale)
	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultSyncInterval, cfg.Workers.SyncInterval)
	assert.Equal(t, DefaultSchemaFile, cfg.App.SchemaFile)
}

func TestNewMirrorConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:    "empty dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing base url",
			mutate:  func(cfg *StructuredConfig) { cfg.Source.BaseURL = "" },
			wantErr: ErrInvalidSourceConfigs,
		},
		{
			name:    "relative base url",
			mutate:  func(cfg *StructuredConfig) { cfg.Source.BaseURL = "cdn.example.com" },
			wantErr: ErrInvalidSourceConfigs,
		},
		{
			name:    "missing space",
			mutate:  func(cfg *StructuredConfig) { cfg.Source.SpaceID = "" },
			wantErr: ErrInvalidSourceConfigs,
		},
		{
			name:    "zero request timeout",
			mutate:  func(cfg *StructuredConfig) { cfg.Source.RequestTimeout = 0 },
			wantErr: ErrInvalidSourceConfigs,
		},
		{
			name:    "negative retry count",
			mutate:  func(cfg *StructuredConfig) { cfg.Source.RetryCount = -1 },
			wantErr: ErrInvalidSourceConfigs,
		},
		{
			name:    "negative page limit",
			mutate:  func(cfg *StructuredConfig) { cfg.Source.PageLimit = -5 },
			wantErr: ErrInvalidSourceConfigs,
		},
		{
			name:    "content type without entry sync type",
			mutate:  func(cfg *StructuredConfig) { cfg.Source.ContentType = "blogPost" },
			wantErr: ErrInvalidSourceConfigs,
		},
		{
			name:    "zero sync interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.SyncInterval = 0 },
			wantErr: ErrInvalidWorkerConfigs,
		},
		{
			name:    "missing schema file",
			mutate:  func(cfg *StructuredConfig) { cfg.App.SchemaFile = "" },
			wantErr: ErrInvalidAppConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validStructuredConfig()
			tt.mutate(cfg)

			mirrorCfg, err := NewMirrorConfig(cfg)
			assert.Nil(t, mirrorCfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetMirrorConfig_FromFlags(t *testing.T) {
	setEnvVars(t, nil)

	cfg, err := GetMirrorConfig([]string{
		"-source-url", "https://cdn.example.com",
		"-space", "space-1",
		"-d", ":memory:",
		"-sync-interval", "30s",
	})
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.Storage.DB.DSN)
	assert.Equal(t, 30*time.Second, cfg.Workers.SyncInterval)
	assert.Equal(t, DefaultRequestTimeout, cfg.Source.RequestTimeout)
}

func TestGetMirrorConfig_MissingSource(t *testing.T) {
	setEnvVars(t, nil)

	cfg, err := GetMirrorConfig(nil)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidSourceConfigs)
}
