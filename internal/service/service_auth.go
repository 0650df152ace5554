package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mealdrop/mealdrop/internal/config"
	"github.com/mealdrop/mealdrop/internal/logger"
	"github.com/mealdrop/mealdrop/internal/store"
	"github.com/mealdrop/mealdrop/internal/utils"
	"github.com/mealdrop/mealdrop/models"
)

// authService is the concrete implementation of AuthService. It composes the
// credential store, the token lifecycle and the mail dispatcher into the
// password-based flows.
type authService struct {
	transactor         store.Transactor
	userRepository     store.UserRepository
	passwordRepository store.PasswordRepository

	tokenService TokenService
	mail         MailDispatcher

	// bcryptCost is the work factor for password hashing.
	bcryptCost int

	// resetSignKey signs forgot-password tokens; distinct from the session
	// token secrets.
	resetSignKey string
	resetTTL     time.Duration
	tokenIssuer  string

	// resetLinkBase is the user-facing URL the reset token is appended to.
	resetLinkBase string

	logger *logger.Logger
}

// NewAuthService constructs an AuthService over the given repositories,
// token lifecycle and mail dispatcher.
func NewAuthService(repos *store.Repositories, tokenService TokenService, mail MailDispatcher, authCfg config.Auth, mailCfg config.Mail, logger *logger.Logger) AuthService {
	return &authService{
		transactor:         repos.Transactor,
		userRepository:     repos.UserRepository,
		passwordRepository: repos.PasswordRepository,
		tokenService:       tokenService,
		mail:               mail,
		bcryptCost:         authCfg.BcryptCost,
		resetSignKey:       authCfg.ResetTokenSecret,
		resetTTL:           authCfg.ResetTokenTTL,
		tokenIssuer:        authCfg.TokenIssuer,
		resetLinkBase:      mailCfg.ResetLinkBase,
		logger:             logger,
	}
}

// Register creates a user account with a password credential and issues the
// first token pair. The read-before-write existence check gives the common
// duplicate case a clean error; the unique index on lower(email) is the
// backstop for the race between two concurrent registrations.
func (a *authService) Register(ctx context.Context, email, password string, role models.Role) (models.AuthPayload, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return models.AuthPayload{}, err
	}
	if password == "" {
		return models.AuthPayload{}, fmt.Errorf("%w: password must not be empty", ErrUnprocessableEntity)
	}
	if !role.Valid() {
		return models.AuthPayload{}, fmt.Errorf("%w: unknown role %q", ErrUnprocessableEntity, role)
	}

	if _, err := a.userRepository.FindUserByEmail(ctx, email); err == nil {
		return models.AuthPayload{}, ErrEmailAlreadyInUse
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("email", email).Msg("user existence check failed")
		return models.AuthPayload{}, fmt.Errorf("user existence check failed: %w", err)
	}

	passwordHash, err := utils.HashPassword(password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.AuthPayload{}, fmt.Errorf("password hashing failed: %w", err)
	}

	var payload models.AuthPayload
	err = a.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		user, err := a.userRepository.CreateUser(ctx, models.User{Email: email, Role: role})
		if err != nil {
			if errors.Is(err, store.ErrEmailAlreadyExists) {
				return ErrEmailAlreadyInUse
			}
			return fmt.Errorf("user creation failed: %w", err)
		}

		if _, err := a.passwordRepository.CreatePassword(ctx, models.PasswordCredential{UserID: user.ID, PasswordHash: passwordHash}); err != nil {
			return fmt.Errorf("password credential creation failed: %w", err)
		}

		tokens, err := a.tokenService.IssueTokenPair(ctx, user.ID)
		if err != nil {
			return err
		}

		payload = models.AuthPayload{Tokens: tokens, User: user}
		return nil
	})
	if err != nil {
		return models.AuthPayload{}, err
	}

	log.Info().Str("userID", payload.User.ID.String()).Str("role", string(role)).Msg("user registered")
	return payload, nil
}

// Login verifies the password and issues a fresh token pair, rotating out
// whatever session the user had before.
func (a *authService) Login(ctx context.Context, email, password string) (models.AuthPayload, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return models.AuthPayload{}, err
	}
	if password == "" {
		return models.AuthPayload{}, fmt.Errorf("%w: password must not be empty", ErrUnprocessableEntity)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.AuthPayload{}, ErrUserNotRegistered
		}

		log.Err(err).Str("email", email).Msg("user lookup failed")
		return models.AuthPayload{}, fmt.Errorf("user lookup failed: %w", err)
	}

	credential, err := a.findPasswordCredential(ctx, user.ID)
	if err != nil {
		return models.AuthPayload{}, err
	}

	if !utils.VerifyPassword(password, credential.PasswordHash) {
		log.Warn().Str("userID", user.ID.String()).Msg("wrong password")
		return models.AuthPayload{}, ErrWrongPassword
	}

	tokens, err := a.tokenService.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return models.AuthPayload{}, err
	}

	return models.AuthPayload{Tokens: tokens, User: user}, nil
}

// Refresh rotates the token pair identified by the presented refresh token.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	if refreshToken == "" {
		return models.TokenPair{}, ErrUserNotLoggedIn
	}

	return a.tokenService.RefreshTokenPair(ctx, refreshToken)
}

// Logout revokes the user's session.
func (a *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUserNotLoggedIn
	}

	return a.tokenService.RevokeSession(ctx, userID)
}

// ForgetPassword issues a short-lived reset token, stores it on the user's
// password credential (creating the credential lazily for passkey-only
// accounts), and hands the reset link to the mail dispatcher.
//
// An unknown email is NOT reported to the caller: the operation no-ops and
// returns success so the endpoint cannot be used to enumerate accounts.
func (a *authService) ForgetPassword(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Debug().Str("email", email).Msg("password reset requested for unknown email")
			return nil
		}

		log.Err(err).Str("email", email).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	resetToken, err := utils.GenerateResetToken(a.tokenIssuer, user.Email, a.resetTTL, a.resetSignKey)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	err = a.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		setErr := a.passwordRepository.SetForgetPasswordToken(ctx, user.ID, resetToken)
		if errors.Is(setErr, store.ErrNoPasswordCredential) {
			if _, createErr := a.passwordRepository.CreatePassword(ctx, models.PasswordCredential{UserID: user.ID}); createErr != nil {
				return fmt.Errorf("password credential creation failed: %w", createErr)
			}
			setErr = a.passwordRepository.SetForgetPasswordToken(ctx, user.ID, resetToken)
		}
		if setErr != nil {
			return fmt.Errorf("storing reset token failed: %w", setErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	resetLink := a.resetLinkBase + "?token=" + url.QueryEscape(resetToken)
	if err := a.mail.DispatchPasswordReset(ctx, user.Email, resetLink); err != nil {
		// delivery is fire-and-forget, the reset token is already on file
		log.Err(err).Str("userID", user.ID.String()).Msg("password reset mail was not dispatched")
	}

	return nil
}

// RecoverPassword consumes a reset token and sets the new password. Beyond
// signature and expiry, the presented token must exactly equal the one on
// file: requesting a newer reset invalidates every link mailed before it, and
// a consumed link cannot be replayed because the field is cleared together
// with the password write.
func (a *authService) RecoverPassword(ctx context.Context, token, newPassword string) error {
	log := logger.FromContext(ctx)

	if token == "" {
		return ErrInvalidToken
	}
	if newPassword == "" {
		return fmt.Errorf("%w: password must not be empty", ErrUnprocessableEntity)
	}

	claims, err := utils.ParseResetToken(token, a.resetSignKey, a.tokenIssuer)
	if err != nil {
		return classifyTokenError(err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, normalizeEmail(claims.Email))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrUserNotRegistered
		}

		log.Err(err).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	credential, err := a.passwordRepository.FindPasswordByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNoPasswordCredential) {
			return ErrInvalidToken
		}

		log.Err(err).Str("userID", user.ID.String()).Msg("password credential lookup failed")
		return fmt.Errorf("password credential lookup failed: %w", err)
	}

	if credential.ForgetPasswordToken == "" || credential.ForgetPasswordToken != token {
		return ErrInvalidToken
	}

	passwordHash, err := utils.HashPassword(newPassword, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.passwordRepository.UpdatePasswordAndClearResetToken(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("password update failed: %w", err)
	}

	log.Info().Str("userID", user.ID.String()).Msg("password recovered")
	return nil
}

// ChangePassword replaces the password of an authenticated user after
// verifying the current one.
func (a *authService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	if userID == uuid.Nil {
		return ErrUserNotLoggedIn
	}
	if newPassword == "" {
		return fmt.Errorf("%w: password must not be empty", ErrUnprocessableEntity)
	}

	credential, err := a.findPasswordCredential(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.VerifyPassword(currentPassword, credential.PasswordHash) {
		log.Warn().Str("userID", userID.String()).Msg("wrong password")
		return ErrWrongPassword
	}
	if currentPassword == newPassword {
		return ErrPasswordsMatch
	}

	passwordHash, err := utils.HashPassword(newPassword, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.passwordRepository.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return fmt.Errorf("password update failed: %w", err)
	}

	log.Info().Str("userID", userID.String()).Msg("password changed")
	return nil
}

// findPasswordCredential loads the user's password credential and reports
// passkey-only accounts (no row, or a row with an empty hash) as
// ErrUserHasNoPassword.
func (a *authService) findPasswordCredential(ctx context.Context, userID uuid.UUID) (models.PasswordCredential, error) {
	log := logger.FromContext(ctx)

	credential, err := a.passwordRepository.FindPasswordByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoPasswordCredential) {
			return models.PasswordCredential{}, ErrUserHasNoPassword
		}

		log.Err(err).Str("userID", userID.String()).Msg("password credential lookup failed")
		return models.PasswordCredential{}, fmt.Errorf("password credential lookup failed: %w", err)
	}
	if !credential.HasPassword() {
		return models.PasswordCredential{}, ErrUserHasNoPassword
	}

	return credential, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email", ErrUnprocessableEntity)
	}

	return nil
}
