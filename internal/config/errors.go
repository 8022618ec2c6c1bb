package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSessionConfigs indicates a missing or too short session
	// secret.
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a bcrypt cost out of range).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid server settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidLimiterConfigs indicates invalid login throttling settings.
	ErrInvalidLimiterConfigs = errors.New("invalid limiter configuration")
	// ErrInvalidWorkersConfigs indicates a non-positive worker interval.
	ErrInvalidWorkersConfigs = errors.New("invalid workers configuration")
)
