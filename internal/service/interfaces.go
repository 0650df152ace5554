package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mealdrop/mealdrop/models"
)

// AuthService implements the password-credential flows: registration, login,
// session refresh and revocation, and the password reset loop.
type AuthService interface {
	Register(ctx context.Context, email, password string, role models.Role) (models.AuthPayload, error)
	Login(ctx context.Context, email, password string) (models.AuthPayload, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error

	ForgetPassword(ctx context.Context, email string) error
	RecoverPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

// TokenService is the single source of truth for access/refresh token pairs:
// issuance, rotation on refresh, revocation on logout, and stateless access
// token validation.
type TokenService interface {
	IssueTokenPair(ctx context.Context, userID uuid.UUID) (models.TokenPair, error)
	RefreshTokenPair(ctx context.Context, refreshToken string) (models.TokenPair, error)
	RevokeSession(ctx context.Context, userID uuid.UUID) error
	ValidateAccessToken(ctx context.Context, accessToken string) (uuid.UUID, error)
}

// PasskeyService drives the WebAuthn registration and login ceremonies.
type PasskeyService interface {
	InitializeRegistration(ctx context.Context, email string, role models.Role) (models.PasskeyRegistrationInit, error)
	FinalizeRegistration(ctx context.Context, userID string, attestation []byte) (models.AuthPayload, error)
	InitializeLogin(ctx context.Context, email string) (models.PasskeyLoginInit, error)
	FinalizeLogin(ctx context.Context, email string, assertion []byte) (models.AuthPayload, error)
}

// MailDispatcher hands password-reset mail off for delivery. Delivery is
// fire-and-forget from the caller's perspective.
type MailDispatcher interface {
	DispatchPasswordReset(ctx context.Context, to string, resetLink string) error
}
