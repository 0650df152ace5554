package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/mealdrop/mealdrop/models"
)

// ErrorClassificator decides whether a failed database operation is
// transient and worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Transactor runs a function inside a database transaction. Repository calls
// made with the context passed to fn join that transaction.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

type PasswordRepository interface {
	CreatePassword(ctx context.Context, credential models.PasswordCredential) (models.PasswordCredential, error)
	FindPasswordByUserID(ctx context.Context, userID uuid.UUID) (models.PasswordCredential, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	SetForgetPasswordToken(ctx context.Context, userID uuid.UUID, token string) error
	UpdatePasswordAndClearResetToken(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

type TokenRepository interface {
	FindTokenByUserID(ctx context.Context, userID uuid.UUID) (models.RefreshTokenRecord, error)
	UpsertRefreshToken(ctx context.Context, userID uuid.UUID, refreshTokenHash string) error
	ClearRefreshToken(ctx context.Context, userID uuid.UUID) error
}

type PasskeyRepository interface {
	CreatePasskey(ctx context.Context, passkey models.PasskeyCredential) (models.PasskeyCredential, error)
	FindPasskeyByUserID(ctx context.Context, userID uuid.UUID) (models.PasskeyCredential, error)
	UpdatePasskey(ctx context.Context, update models.PasskeyUpdate) error
	CreateAuthenticator(ctx context.Context, authenticator models.PasskeyAuthenticator) (models.PasskeyAuthenticator, error)
	UpdateSignCount(ctx context.Context, passkeyID int64, signCount uint32) error
}
