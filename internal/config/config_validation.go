// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the package
// validation errors otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrMissingTokenSignKey
	}

	if cfg.App.TokenDuration <= 0 {
		return ErrInvalidTokenDuration
	}

	if cfg.App.PasswordHashCost < bcrypt.MinCost || cfg.App.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: %d", ErrInvalidPasswordHashCost, cfg.App.PasswordHashCost)
	}

	if cfg.App.PageSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, cfg.App.PageSize)
	}

	if cfg.Storage.Files.AvatarDir == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
