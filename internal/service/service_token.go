// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mealdrop/mealdrop/internal/config"
	"github.com/mealdrop/mealdrop/internal/logger"
	"github.com/mealdrop/mealdrop/internal/store"
	"github.com/mealdrop/mealdrop/internal/utils"
	"github.com/mealdrop/mealdrop/models"
)

// tokenService is the concrete implementation of TokenService.
//
// Access and refresh tokens are signed with distinct secrets so a leaked
// token of one purpose cannot be replayed as the other. Only a keyed hash of
// the refresh token is persisted; the user's single row holds the hash of the
// token issued last, so every issuance invalidates the previous session.
type tokenService struct {
	// tokenRepository persists the per-user refresh-token hash.
	tokenRepository store.TokenRepository

	// accessSignKey and refreshSignKey are the HMAC secrets for the two
	// token purposes.
	accessSignKey  string
	refreshSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// accessTTL and refreshTTL control how long issued tokens remain valid.
	accessTTL  time.Duration
	refreshTTL time.Duration

	// hashSalt is the server-side secret salt for refresh-token-at-rest
	// hashing.
	hashSalt string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewTokenService constructs a TokenService wired to the given
// TokenRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewTokenService(tokenRepository store.TokenRepository, cfg config.Auth, logger *logger.Logger) TokenService {
	return &tokenService{
		tokenRepository: tokenRepository,
		accessSignKey:   cfg.AccessTokenSecret,
		refreshSignKey:  cfg.RefreshTokenSecret,
		tokenIssuer:     cfg.TokenIssuer,
		accessTTL:       cfg.AccessTokenTTL,
		refreshTTL:      cfg.RefreshTokenTTL,
		hashSalt:        cfg.TokenHashSalt,
		logger:          logger,
	}
}

// IssueTokenPair mints a fresh access+refresh pair for the user and stores
// the keyed hash of the refresh token, overwriting whatever hash the user's
// row held before. Any previously issued refresh token stops working at that
// point.
func (t *tokenService) IssueTokenPair(ctx context.Context, userID uuid.UUID) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	accessToken, err := utils.GenerateSessionToken(t.tokenIssuer, userID, t.accessTTL, t.accessSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshToken, err := utils.GenerateSessionToken(t.tokenIssuer, userID, t.refreshTTL, t.refreshSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshHash := utils.HashOpaqueToken(refreshToken, utils.PurposeRefreshToken, t.hashSalt)
	if err := t.tokenRepository.UpsertRefreshToken(ctx, userID, refreshHash); err != nil {
		log.Err(err).Str("userID", userID.String()).Msg("storing refresh token hash failed")
		return models.TokenPair{}, fmt.Errorf("storing refresh token hash failed: %w", err)
	}

	return models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshTokenPair rotates the session: it verifies the presented refresh
// token's signature, re-derives its keyed hash, compares it against the hash
// on file, and on match issues a new pair (which overwrites the stored hash,
// so the presented token cannot be replayed).
//
// Failure modes:
//   - signature/expiry verification failure → ErrRefreshTokenExpired.
//   - malformed subject claim → ErrInvalidUserIDFormat.
//   - no token row or logged-out row → ErrRefreshTokenNotFound.
//   - hash mismatch (token was rotated away) → ErrRefreshTokenExpired.
func (t *tokenService) RefreshTokenPair(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	claims, err := utils.ParseSessionToken(refreshToken, t.refreshSignKey, t.tokenIssuer)
	if err != nil {
		return models.TokenPair{}, ErrRefreshTokenExpired
	}

	userID, err := claims.UserID()
	if err != nil {
		return models.TokenPair{}, ErrInvalidUserIDFormat
	}

	record, err := t.tokenRepository.FindTokenByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoTokenRecord) {
			return models.TokenPair{}, ErrRefreshTokenNotFound
		}

		log.Err(err).Str("userID", userID.String()).Msg("refresh token lookup failed")
		return models.TokenPair{}, fmt.Errorf("refresh token lookup failed: %w", err)
	}
	if !record.LoggedIn() {
		return models.TokenPair{}, ErrRefreshTokenNotFound
	}

	presentedHash := utils.HashOpaqueToken(refreshToken, utils.PurposeRefreshToken, t.hashSalt)
	if subtle.ConstantTimeCompare([]byte(presentedHash), []byte(record.RefreshTokenHash)) != 1 {
		return models.TokenPair{}, ErrRefreshTokenExpired
	}

	return t.IssueTokenPair(ctx, userID)
}

// RevokeSession blanks the stored refresh-token hash. Idempotent: revoking an
// already logged-out session succeeds.
func (t *tokenService) RevokeSession(ctx context.Context, userID uuid.UUID) error {
	if err := t.tokenRepository.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("revoking session failed: %w", err)
	}

	return nil
}

// ValidateAccessToken verifies the access token's signature, expiry and
// issuer, and returns the user id from its subject claim. No storage lookup
// is made: access tokens are not revocable before expiry.
func (t *tokenService) ValidateAccessToken(ctx context.Context, accessToken string) (uuid.UUID, error) {
	claims, err := utils.ParseSessionToken(accessToken, t.accessSignKey, t.tokenIssuer)
	if err != nil {
		return uuid.Nil, classifyTokenError(err)
	}

	userID, err := claims.UserID()
	if err != nil {
		return uuid.Nil, ErrInvalidUserIDFormat
	}

	return userID, nil
}

// classifyTokenError maps low-level JWT verification failures onto the three
// outcomes callers distinguish: expired, malformed or wrong-secret, and
// everything else.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidTokenFormat
	default:
		return ErrInvalidToken
	}
}
