// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// applyDefaults fills in values the deployment may legitimately omit.
// Secrets never get defaults; their absence is a validation error.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Auth.AccessTokenTTL == 0 {
		cfg.Auth.AccessTokenTTL = 30 * time.Minute
	}
	if cfg.Auth.RefreshTokenTTL == 0 {
		cfg.Auth.RefreshTokenTTL = 14 * 24 * time.Hour
	}
	if cfg.Auth.ResetTokenTTL == 0 {
		cfg.Auth.ResetTokenTTL = time.Hour
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = 10
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = ":8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Workers.MailQueueSize == 0 {
		cfg.Workers.MailQueueSize = 64
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error naming the
// invalid configuration group otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.AccessTokenSecret == "" ||
		cfg.Auth.RefreshTokenSecret == "" ||
		cfg.Auth.ResetTokenSecret == "" ||
		cfg.Auth.TokenHashSalt == "" ||
		cfg.Auth.TokenIssuer == "" {
		return ErrInvalidAuthConfigs
	}

	// a token signed for one purpose must never verify for another
	if cfg.Auth.AccessTokenSecret == cfg.Auth.RefreshTokenSecret ||
		cfg.Auth.AccessTokenSecret == cfg.Auth.ResetTokenSecret ||
		cfg.Auth.RefreshTokenSecret == cfg.Auth.ResetTokenSecret {
		return ErrInvalidAuthConfigs
	}

	if cfg.Passkeys.RPDisplayName == "" || cfg.Passkeys.RPID == "" || cfg.Passkeys.RPOrigin == "" {
		return ErrInvalidPasskeysConfigs
	}

	return nil
}
