package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAuthConfigs indicates invalid authentication settings
	// (for example, a missing token secret, or two purposes sharing the
	// same secret).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidPasskeysConfigs indicates incomplete WebAuthn relying-party
	// settings (display name, id or origin).
	ErrInvalidPasskeysConfigs = errors.New("invalid passkeys configuration")
)
