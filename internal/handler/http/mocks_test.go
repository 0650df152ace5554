package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/mealdrop/mealdrop/internal/service"
	"github.com/mealdrop/mealdrop/models"
)

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn        func(ctx context.Context, email, password string, role models.Role) (models.AuthPayload, error)
	loginFn           func(ctx context.Context, email, password string) (models.AuthPayload, error)
	refreshFn         func(ctx context.Context, refreshToken string) (models.TokenPair, error)
	logoutFn          func(ctx context.Context, userID uuid.UUID) error
	forgetPasswordFn  func(ctx context.Context, email string) error
	recoverPasswordFn func(ctx context.Context, token, newPassword string) error
	changePasswordFn  func(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

func (m *mockAuthService) Register(ctx context.Context, email, password string, role models.Role) (models.AuthPayload, error) {
	return m.registerFn(ctx, email, password, role)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.AuthPayload, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	return m.refreshFn(ctx, refreshToken)
}

func (m *mockAuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return m.logoutFn(ctx, userID)
}

func (m *mockAuthService) ForgetPassword(ctx context.Context, email string) error {
	return m.forgetPasswordFn(ctx, email)
}

func (m *mockAuthService) RecoverPassword(ctx context.Context, token, newPassword string) error {
	return m.recoverPasswordFn(ctx, token, newPassword)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	return m.changePasswordFn(ctx, userID, currentPassword, newPassword)
}

// ─────────────────────────────────────────────
// Mock: service.TokenService
// ─────────────────────────────────────────────

type mockTokenService struct {
	issueFn    func(ctx context.Context, userID uuid.UUID) (models.TokenPair, error)
	refreshFn  func(ctx context.Context, refreshToken string) (models.TokenPair, error)
	revokeFn   func(ctx context.Context, userID uuid.UUID) error
	validateFn func(ctx context.Context, accessToken string) (uuid.UUID, error)
}

func (m *mockTokenService) IssueTokenPair(ctx context.Context, userID uuid.UUID) (models.TokenPair, error) {
	return m.issueFn(ctx, userID)
}

func (m *mockTokenService) RefreshTokenPair(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	return m.refreshFn(ctx, refreshToken)
}

func (m *mockTokenService) RevokeSession(ctx context.Context, userID uuid.UUID) error {
	return m.revokeFn(ctx, userID)
}

func (m *mockTokenService) ValidateAccessToken(ctx context.Context, accessToken string) (uuid.UUID, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, accessToken)
	}
	return uuid.Nil, service.ErrInvalidToken
}

// ─────────────────────────────────────────────
// Mock: service.PasskeyService
// ─────────────────────────────────────────────

type mockPasskeyService struct {
	initRegistrationFn     func(ctx context.Context, email string, role models.Role) (models.PasskeyRegistrationInit, error)
	finalizeRegistrationFn func(ctx context.Context, userID string, attestation []byte) (models.AuthPayload, error)
	initLoginFn            func(ctx context.Context, email string) (models.PasskeyLoginInit, error)
	finalizeLoginFn        func(ctx context.Context, email string, assertion []byte) (models.AuthPayload, error)
}

func (m *mockPasskeyService) InitializeRegistration(ctx context.Context, email string, role models.Role) (models.PasskeyRegistrationInit, error) {
	return m.initRegistrationFn(ctx, email, role)
}

func (m *mockPasskeyService) FinalizeRegistration(ctx context.Context, userID string, attestation []byte) (models.AuthPayload, error) {
	return m.finalizeRegistrationFn(ctx, userID, attestation)
}

func (m *mockPasskeyService) InitializeLogin(ctx context.Context, email string) (models.PasskeyLoginInit, error) {
	return m.initLoginFn(ctx, email)
}

func (m *mockPasskeyService) FinalizeLogin(ctx context.Context, email string, assertion []byte) (models.AuthPayload, error) {
	return m.finalizeLoginFn(ctx, email, assertion)
}
