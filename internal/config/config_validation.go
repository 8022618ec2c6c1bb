// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// minSessionSecretLength is the shortest accepted session signing key.
const minSessionSecretLength = 32

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the ErrInvalid*
// errors wrapped with a description otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is empty", ErrInvalidStorageConfigs)
	}

	if len(cfg.Session.Secret) < minSessionSecretLength {
		return fmt.Errorf("%w: secret must be at least %d bytes", ErrInvalidSessionConfigs, minSessionSecretLength)
	}

	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range [%d, %d]", ErrInvalidAppConfigs, cfg.App.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Limiter.MaxAttempts <= 0 || cfg.Limiter.Window <= 0 || cfg.Limiter.LockDuration <= 0 {
		return ErrInvalidLimiterConfigs
	}

	if cfg.Workers.PruneInterval <= 0 {
		return fmt.Errorf("%w: prune interval must be positive", ErrInvalidWorkersConfigs)
	}

	return nil
}
