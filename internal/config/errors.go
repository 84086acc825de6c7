package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when the merged
// configuration cannot be used to start the service.
var (
	// ErrMissingTokenSignKey indicates that no token signing key was provided
	// by any configuration source.
	ErrMissingTokenSignKey = errors.New("token sign key is required")
	// ErrInvalidPasswordHashCost indicates a bcrypt cost outside the range
	// accepted by golang.org/x/crypto/bcrypt.
	ErrInvalidPasswordHashCost = errors.New("invalid password hash cost")
	// ErrInvalidPageSize indicates a non-positive listing page size.
	ErrInvalidPageSize = errors.New("page size must be positive")
	// ErrInvalidTokenDuration indicates a non-positive token lifetime.
	ErrInvalidTokenDuration = errors.New("token duration must be positive")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty avatar directory).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
