// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Platform-wide variables read when the prefixed ones are unset, so the
// server runs unchanged on hosts that export these names.
const (
	fallbackDatabaseURLEnv = "DATABASE_URL"
	fallbackSecretEnv      = "SECRET_KEY"
)

// parseEnv populates cfg from environment variables using caarlos0/env.
// Fields are mapped via the `env` and `envPrefix` tags of [StructuredConfig].
// DATABASE_URL and SECRET_KEY fill the DSN and session secret when their
// prefixed variables are absent.
func parseEnv(cfg *StructuredConfig) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = os.Getenv(fallbackDatabaseURLEnv)
	}
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = os.Getenv(fallbackSecretEnv)
	}

	return nil
}
