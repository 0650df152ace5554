package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mealdrop/mealdrop/internal/store"
	"github.com/mealdrop/mealdrop/models"
)

// ─────────────────────────────────────────────
// Mock: store.Transactor
// ─────────────────────────────────────────────

type mockTransactor struct{}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn      func(ctx context.Context, user models.User) (models.User, error)
	findByEmailFn func(ctx context.Context, email string) (models.User, error)
	findByIDFn    func(ctx context.Context, id uuid.UUID) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = uuid.New()
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return models.User{}, store.ErrNoUserWasFound
}

// ─────────────────────────────────────────────
// Mock: store.PasswordRepository
// ─────────────────────────────────────────────

type mockPasswordRepository struct {
	createFn       func(ctx context.Context, credential models.PasswordCredential) (models.PasswordCredential, error)
	findByUserIDFn func(ctx context.Context, userID uuid.UUID) (models.PasswordCredential, error)
	updateFn       func(ctx context.Context, userID uuid.UUID, passwordHash string) error
	setTokenFn     func(ctx context.Context, userID uuid.UUID, token string) error
	updateClearFn  func(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

func (m *mockPasswordRepository) CreatePassword(ctx context.Context, credential models.PasswordCredential) (models.PasswordCredential, error) {
	if m.createFn != nil {
		return m.createFn(ctx, credential)
	}
	return credential, nil
}

func (m *mockPasswordRepository) FindPasswordByUserID(ctx context.Context, userID uuid.UUID) (models.PasswordCredential, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(ctx, userID)
	}
	return models.PasswordCredential{}, store.ErrNoPasswordCredential
}

func (m *mockPasswordRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, passwordHash)
	}
	return nil
}

func (m *mockPasswordRepository) SetForgetPasswordToken(ctx context.Context, userID uuid.UUID, token string) error {
	if m.setTokenFn != nil {
		return m.setTokenFn(ctx, userID, token)
	}
	return nil
}

func (m *mockPasswordRepository) UpdatePasswordAndClearResetToken(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	if m.updateClearFn != nil {
		return m.updateClearFn(ctx, userID, passwordHash)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.TokenRepository
// ─────────────────────────────────────────────

type mockTokenRepository struct {
	findByUserIDFn func(ctx context.Context, userID uuid.UUID) (models.RefreshTokenRecord, error)
	upsertFn       func(ctx context.Context, userID uuid.UUID, refreshTokenHash string) error
	clearFn        func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockTokenRepository) FindTokenByUserID(ctx context.Context, userID uuid.UUID) (models.RefreshTokenRecord, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(ctx, userID)
	}
	return models.RefreshTokenRecord{}, store.ErrNoTokenRecord
}

func (m *mockTokenRepository) UpsertRefreshToken(ctx context.Context, userID uuid.UUID, refreshTokenHash string) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, userID, refreshTokenHash)
	}
	return nil
}

func (m *mockTokenRepository) ClearRefreshToken(ctx context.Context, userID uuid.UUID) error {
	if m.clearFn != nil {
		return m.clearFn(ctx, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.PasskeyRepository
// ─────────────────────────────────────────────

type mockPasskeyRepository struct {
	createFn          func(ctx context.Context, passkey models.PasskeyCredential) (models.PasskeyCredential, error)
	findByUserIDFn    func(ctx context.Context, userID uuid.UUID) (models.PasskeyCredential, error)
	updateFn          func(ctx context.Context, update models.PasskeyUpdate) error
	createAuthFn      func(ctx context.Context, authenticator models.PasskeyAuthenticator) (models.PasskeyAuthenticator, error)
	updateSignCountFn func(ctx context.Context, passkeyID int64, signCount uint32) error
}

func (m *mockPasskeyRepository) CreatePasskey(ctx context.Context, passkey models.PasskeyCredential) (models.PasskeyCredential, error) {
	if m.createFn != nil {
		return m.createFn(ctx, passkey)
	}
	passkey.ID = 1
	return passkey, nil
}

func (m *mockPasskeyRepository) FindPasskeyByUserID(ctx context.Context, userID uuid.UUID) (models.PasskeyCredential, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(ctx, userID)
	}
	return models.PasskeyCredential{}, store.ErrNoPasskeyCredential
}

func (m *mockPasskeyRepository) UpdatePasskey(ctx context.Context, update models.PasskeyUpdate) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, update)
	}
	return nil
}

func (m *mockPasskeyRepository) CreateAuthenticator(ctx context.Context, authenticator models.PasskeyAuthenticator) (models.PasskeyAuthenticator, error) {
	if m.createAuthFn != nil {
		return m.createAuthFn(ctx, authenticator)
	}
	authenticator.ID = 1
	return authenticator, nil
}

func (m *mockPasskeyRepository) UpdateSignCount(ctx context.Context, passkeyID int64, signCount uint32) error {
	if m.updateSignCountFn != nil {
		return m.updateSignCountFn(ctx, passkeyID, signCount)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: TokenService
// ─────────────────────────────────────────────

type mockTokenService struct {
	issueFn    func(ctx context.Context, userID uuid.UUID) (models.TokenPair, error)
	refreshFn  func(ctx context.Context, refreshToken string) (models.TokenPair, error)
	revokeFn   func(ctx context.Context, userID uuid.UUID) error
	validateFn func(ctx context.Context, accessToken string) (uuid.UUID, error)
}

func (m *mockTokenService) IssueTokenPair(ctx context.Context, userID uuid.UUID) (models.TokenPair, error) {
	if m.issueFn != nil {
		return m.issueFn(ctx, userID)
	}
	return models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (m *mockTokenService) RefreshTokenPair(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, refreshToken)
	}
	return models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (m *mockTokenService) RevokeSession(ctx context.Context, userID uuid.UUID) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, userID)
	}
	return nil
}

func (m *mockTokenService) ValidateAccessToken(ctx context.Context, accessToken string) (uuid.UUID, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, accessToken)
	}
	return uuid.Nil, ErrInvalidToken
}

// ─────────────────────────────────────────────
// Mock: MailDispatcher
// ─────────────────────────────────────────────

type mockMailDispatcher struct {
	dispatchFn func(ctx context.Context, to string, resetLink string) error
	dispatched []string
}

func (m *mockMailDispatcher) DispatchPasswordReset(ctx context.Context, to string, resetLink string) error {
	m.dispatched = append(m.dispatched, to)
	if m.dispatchFn != nil {
		return m.dispatchFn(ctx, to, resetLink)
	}
	return nil
}
