// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. Variable names come from
// the env/envPrefix tags, so Source.SpaceID is read from SOURCE_SPACE_ID.
// Unset variables leave their fields zero, which lets later sources win.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error reading mirror env configs: %w", err)
	}
	return nil
}
