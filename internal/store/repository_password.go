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

// passwordRepository is the PostgreSQL-backed implementation of
// [PasswordRepository] over the "user_passwords" table.
//
// A user has at most one password row. Passkey-only accounts have none at
// all, which FindPasswordByUserID reports with [ErrNoPasswordCredential].
type passwordRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPasswordRepository constructs a [PasswordRepository] backed by the
// provided database connection and logger.
func NewPasswordRepository(db *DB, logger *logger.Logger) PasswordRepository {
	logger.Debug().Msg("creating password repository")
	return &passwordRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePassword inserts the password credential row for a user and returns
// it with server-assigned fields.
func (r *passwordRepository) CreatePassword(ctx context.Context, credential models.PasswordCredential) (models.PasswordCredential, error) {
	log := logger.FromContext(ctx)

	row := r.db.querier(ctx).QueryRowContext(ctx, createPasswordCredential, credential.UserID, credential.PasswordHash)

	if err := row.Scan(&credential.ID, &credential.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*passwordRepository.CreatePassword").Msg("error: creating password credential")
		return models.PasswordCredential{}, fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	return credential, nil
}

// FindPasswordByUserID retrieves the password credential row of a user.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoPasswordCredential].
//   - Any other driver-level error → wrapped with [ErrDatabase].
func (r *passwordRepository) FindPasswordByUserID(ctx context.Context, userID uuid.UUID) (models.PasswordCredential, error) {
	log := logger.FromContext(ctx)

	var credential models.PasswordCredential
	row := r.db.querier(ctx).QueryRowContext(ctx, findPasswordByUserID, userID)

	if err := row.Scan(&credential.ID, &credential.UserID, &credential.PasswordHash, &credential.ForgetPasswordToken, &credential.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PasswordCredential{}, ErrNoPasswordCredential
		}

		log.Err(err).Str("func", "*passwordRepository.FindPasswordByUserID").Msg("error: finding password credential")
		return models.PasswordCredential{}, fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	return credential, nil
}

// UpdatePassword replaces the stored password hash of a user.
func (r *passwordRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return r.exec(ctx, "*passwordRepository.UpdatePassword", updatePassword, userID, passwordHash)
}

// SetForgetPasswordToken stores the pending password-reset token of a user.
// Issuing a new token overwrites the previous one, so only the latest reset
// link stays valid.
func (r *passwordRepository) SetForgetPasswordToken(ctx context.Context, userID uuid.UUID, token string) error {
	return r.exec(ctx, "*passwordRepository.SetForgetPasswordToken", setForgetPasswordToken, userID, token)
}

// UpdatePasswordAndClearResetToken replaces the stored password hash and
// clears the pending reset token in a single statement, making the consumed
// reset link single-use.
func (r *passwordRepository) UpdatePasswordAndClearResetToken(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return r.exec(ctx, "*passwordRepository.UpdatePasswordAndClearResetToken", updatePasswordAndClearResetToken, userID, passwordHash)
}

// exec runs a single UPDATE statement against the user's password row and
// reports [ErrNoPasswordCredential] when no row was touched.
func (r *passwordRepository) exec(ctx context.Context, funcName string, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.querier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error: updating password credential")
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error: reading affected rows")
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	if affected == 0 {
		return ErrNoPasswordCredential
	}

	return nil
}
