// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mealdrop/mealdrop/internal/logger"
	"github.com/mealdrop/mealdrop/models"
)

// tokenRepository is the PostgreSQL-backed implementation of
// [TokenRepository] over the "tokens" table.
//
// The table holds at most one row per user: the keyed hash of the refresh
// token issued last. Storing only the latest hash is what enforces
// single-active-session semantics, every issue or rotation invalidates the
// previous refresh token.
type tokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTokenRepository constructs a [TokenRepository] backed by the provided
// database connection and logger.
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// FindTokenByUserID retrieves the refresh-token row of a user.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoTokenRecord].
//   - Any other driver-level error → wrapped with [ErrDatabase].
func (r *tokenRepository) FindTokenByUserID(ctx context.Context, userID uuid.UUID) (models.RefreshTokenRecord, error) {
	log := logger.FromContext(ctx)

	var record models.RefreshTokenRecord
	row := r.db.querier(ctx).QueryRowContext(ctx, findTokenByUserID, userID)

	if err := row.Scan(&record.ID, &record.UserID, &record.RefreshTokenHash, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RefreshTokenRecord{}, ErrNoTokenRecord
		}

		log.Err(err).Str("func", "*tokenRepository.FindTokenByUserID").Msg("error: finding token record")
		return models.RefreshTokenRecord{}, fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	return record, nil
}

// UpsertRefreshToken stores the hash of the freshly issued refresh token,
// replacing whatever hash the user's row held before. Concurrent logins race
// on the same row and the last write wins.
func (r *tokenRepository) UpsertRefreshToken(ctx context.Context, userID uuid.UUID, refreshTokenHash string) error {
	log := logger.FromContext(ctx)

	err := r.db.withRetry(ctx, func() error {
		_, execErr := r.db.querier(ctx).ExecContext(ctx, upsertRefreshToken, userID, refreshTokenHash)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.UpsertRefreshToken").Msg("error: upserting refresh token")
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	return nil
}

// ClearRefreshToken blanks the stored refresh-token hash, ending the user's
// session. Clearing an already-blank or missing row is not an error, logout
// is idempotent.
func (r *tokenRepository) ClearRefreshToken(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContext(ctx)

	err := r.db.withRetry(ctx, func() error {
		_, execErr := r.db.querier(ctx).ExecContext(ctx, clearRefreshToken, userID)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.ClearRefreshToken").Msg("error: clearing refresh token")
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	return nil
}
