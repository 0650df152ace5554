package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/mealdrop/mealdrop/internal/logger"
	"github.com/mealdrop/mealdrop/models"
)

// passkeyRepository is the PostgreSQL-backed implementation of
// [PasskeyRepository] over the "user_passkeys" and "passkeys_authenticators"
// tables.
//
// A user has at most one passkey row, carrying the challenge of the ceremony
// currently in flight. The authenticator sub-record is written once, when a
// registration ceremony finalizes; a unique constraint on user_passkeys_id
// rejects a second binding.
type passkeyRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPasskeyRepository constructs a [PasskeyRepository] backed by the
// provided database connection and logger.
func NewPasskeyRepository(db *DB, logger *logger.Logger) PasskeyRepository {
	logger.Debug().Msg("creating passkey repository")
	return &passkeyRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePasskey inserts the passkey row for a user and returns it with
// server-assigned fields.
func (r *passkeyRepository) CreatePasskey(ctx context.Context, passkey models.PasskeyCredential) (models.PasskeyCredential, error) {
	log := logger.FromContext(ctx)

	row := r.db.querier(ctx).QueryRowContext(ctx, createPasskey, passkey.UserID, passkey.Challenge)

	if err := row.Scan(&passkey.ID, &passkey.CreatedAt); err != nil {
		log.Err(err).Str("func", "*passkeyRepository.CreatePasskey").Msg("error: creating passkey")
		return models.PasskeyCredential{}, fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	return passkey, nil
}

// FindPasskeyByUserID retrieves the passkey row of a user together with its
// bound authenticator, if any. A passkey whose registration ceremony has not
// finalized yet comes back with a nil Authenticator.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoPasskeyCredential].
//   - Any other driver-level error → wrapped with [ErrDatabase].
func (r *passkeyRepository) FindPasskeyByUserID(ctx context.Context, userID uuid.UUID) (models.PasskeyCredential, error) {
	log := logger.FromContext(ctx)

	var (
		passkey         models.PasskeyCredential
		authenticatorID sql.NullInt64
		credentialID    []byte
		publicKey       []byte
		counter         sql.NullInt64
	)

	row := r.db.querier(ctx).QueryRowContext(ctx, findPasskeyByUserID, userID)

	err := row.Scan(
		&passkey.ID, &passkey.UserID, &passkey.Challenge, &passkey.CredentialID, &passkey.CreatedAt,
		&authenticatorID, &credentialID, &publicKey, &counter,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PasskeyCredential{}, ErrNoPasskeyCredential
		}

		log.Err(err).Str("func", "*passkeyRepository.FindPasskeyByUserID").Msg("error: finding passkey")
		return models.PasskeyCredential{}, fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	if authenticatorID.Valid {
		passkey.Authenticator = &models.PasskeyAuthenticator{
			ID:           authenticatorID.Int64,
			PasskeyID:    passkey.ID,
			CredentialID: credentialID,
			PublicKey:    publicKey,
			SignCount:    uint32(counter.Int64),
		}
	}

	return passkey, nil
}

// UpdatePasskey applies a partial update (challenge, credential id, or both)
// to the passkey row of a user. The UPDATE statement is built dynamically
// from the non-nil fields of the update.
//
// Error handling:
//   - No fields to update → [ErrBuildingSQLQuery].
//   - No row matched → [ErrNoPasskeyCredential].
func (r *passkeyRepository) UpdatePasskey(ctx context.Context, update models.PasskeyUpdate) error {
	log := logger.FromContext(ctx)

	builder := sq.Update("user_passkeys").PlaceholderFormat(sq.Dollar)
	if update.Challenge != nil {
		builder = builder.Set("challenge", *update.Challenge)
	}
	if update.CredentialID != nil {
		builder = builder.Set("credential_id", *update.CredentialID)
	}
	builder = builder.Where(sq.Eq{"user_id": update.UserID})

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*passkeyRepository.UpdatePasskey").Msg("error: building update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.querier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*passkeyRepository.UpdatePasskey").Msg("error: updating passkey")
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*passkeyRepository.UpdatePasskey").Msg("error: reading affected rows")
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	if affected == 0 {
		return ErrNoPasskeyCredential
	}

	return nil
}

// CreateAuthenticator binds a verified authenticator to a passkey row. The
// binding is write-once: a second insert for the same passkey violates the
// unique constraint and is reported as [ErrAuthenticatorAlreadyBound].
func (r *passkeyRepository) CreateAuthenticator(ctx context.Context, authenticator models.PasskeyAuthenticator) (models.PasskeyAuthenticator, error) {
	log := logger.FromContext(ctx)

	row := r.db.querier(ctx).QueryRowContext(ctx, createAuthenticator,
		authenticator.PasskeyID, authenticator.CredentialID, authenticator.PublicKey, authenticator.SignCount)

	if err := row.Scan(&authenticator.ID); err != nil {
		log.Err(err).Str("func", "*passkeyRepository.CreateAuthenticator").Msg("error: creating authenticator")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.PasskeyAuthenticator{}, ErrAuthenticatorAlreadyBound
		default:
			return models.PasskeyAuthenticator{}, fmt.Errorf("%w: %w", ErrDatabase, err)
		}
	}

	return authenticator, nil
}

// UpdateSignCount persists the authenticator's signature counter after a
// verified login assertion.
func (r *passkeyRepository) UpdateSignCount(ctx context.Context, passkeyID int64, signCount uint32) error {
	log := logger.FromContext(ctx)

	err := r.db.withRetry(ctx, func() error {
		_, execErr := r.db.querier(ctx).ExecContext(ctx, updateAuthenticatorSignCount, passkeyID, signCount)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*passkeyRepository.UpdateSignCount").Msg("error: updating sign count")
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	return nil
}
