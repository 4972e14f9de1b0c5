// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks the merged [StructuredConfig] before it is mapped onto a
// runtime view. Group-level rules live on the views themselves.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *MirrorConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Source.BaseURL == "" || cfg.Source.SpaceID == "" || cfg.Source.RequestTimeout <= 0 {
		return ErrInvalidSourceConfigs
	}
	if u, err := url.Parse(cfg.Source.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: malformed base url %q", ErrInvalidSourceConfigs, cfg.Source.BaseURL)
	}
	if cfg.Source.RetryCount < 0 || cfg.Source.PageLimit < 0 {
		return fmt.Errorf("%w: negative retry count or page limit", ErrInvalidSourceConfigs)
	}
	if cfg.Source.ContentType != "" && cfg.Source.SyncType != "Entry" {
		return fmt.Errorf("%w: content type filter requires sync type Entry", ErrInvalidSourceConfigs)
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.SchemaFile == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
