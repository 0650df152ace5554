package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/google/uuid"
	"github.com/mealdrop/mealdrop/internal/config"
	"github.com/mealdrop/mealdrop/internal/logger"
	"github.com/mealdrop/mealdrop/internal/store"
	"github.com/mealdrop/mealdrop/models"
)

// passkeyService is the concrete implementation of PasskeyService. It drives
// the WebAuthn ceremonies against the relying party configured at startup.
//
// Ceremony state lives on the user's passkey row: the challenge issued last
// is persisted there and reconstructed into the verifier's session data when
// the client comes back with its response. A challenge is single-use, every
// initialize overwrites it and every successful finalize clears it.
type passkeyService struct {
	transactor        store.Transactor
	userRepository    store.UserRepository
	passkeyRepository store.PasskeyRepository

	tokenService TokenService
	webAuthn     *webauthn.WebAuthn

	logger *logger.Logger
}

// NewPasskeyService constructs a PasskeyService for the relying party
// described by cfg.
func NewPasskeyService(repos *store.Repositories, tokenService TokenService, cfg config.Passkeys, logger *logger.Logger) (PasskeyService, error) {
	webAuthn, err := webauthn.New(&webauthn.Config{
		RPDisplayName: cfg.RPDisplayName,
		RPID:          cfg.RPID,
		RPOrigins:     []string{cfg.RPOrigin},
	})
	if err != nil {
		return nil, fmt.Errorf("configuring webauthn relying party failed: %w", err)
	}

	return &passkeyService{
		transactor:        repos.Transactor,
		userRepository:    repos.UserRepository,
		passkeyRepository: repos.PasskeyRepository,
		tokenService:      tokenService,
		webAuthn:          webAuthn,
		logger:            logger,
	}, nil
}

// passkeyUser adapts a user record and its stored authenticator to the
// verifier's user abstraction.
type passkeyUser struct {
	user        models.User
	credentials []webauthn.Credential
}

func (u *passkeyUser) WebAuthnID() []byte {
	return u.user.ID[:]
}

func (u *passkeyUser) WebAuthnName() string {
	return u.user.Email
}

func (u *passkeyUser) WebAuthnDisplayName() string {
	return u.user.Email
}

func (u *passkeyUser) WebAuthnCredentials() []webauthn.Credential {
	return u.credentials
}

// storedCredential rebuilds the verifier's credential from the authenticator
// row, including the signature counter used for replay detection.
func storedCredential(authenticator *models.PasskeyAuthenticator) webauthn.Credential {
	return webauthn.Credential{
		ID:        authenticator.CredentialID,
		PublicKey: authenticator.PublicKey,
		Authenticator: webauthn.Authenticator{
			SignCount: authenticator.SignCount,
		},
	}
}

// InitializeRegistration starts the registration ceremony for the given
// email, creating the user account if it does not exist yet. The generated
// challenge is persisted on the user's passkey row.
//
// An email whose account already has a bound authenticator fails with
// ErrEmailAlreadyInUse.
func (p *passkeyService) InitializeRegistration(ctx context.Context, email string, role models.Role) (models.PasskeyRegistrationInit, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return models.PasskeyRegistrationInit{}, err
	}
	if !role.Valid() {
		return models.PasskeyRegistrationInit{}, fmt.Errorf("%w: unknown role %q", ErrUnprocessableEntity, role)
	}

	var init models.PasskeyRegistrationInit
	err := p.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		user, err := p.userRepository.FindUserByEmail(ctx, email)
		newUser := errors.Is(err, store.ErrNoUserWasFound)
		if err != nil && !newUser {
			log.Err(err).Str("email", email).Msg("user lookup failed")
			return fmt.Errorf("user lookup failed: %w", err)
		}

		if newUser {
			user, err = p.userRepository.CreateUser(ctx, models.User{Email: email, Role: role})
			if err != nil {
				if errors.Is(err, store.ErrEmailAlreadyExists) {
					return ErrEmailAlreadyInUse
				}
				return fmt.Errorf("user creation failed: %w", err)
			}
		}

		passkey, err := p.passkeyRepository.FindPasskeyByUserID(ctx, user.ID)
		noPasskey := errors.Is(err, store.ErrNoPasskeyCredential)
		if err != nil && !noPasskey {
			log.Err(err).Str("userID", user.ID.String()).Msg("passkey lookup failed")
			return fmt.Errorf("passkey lookup failed: %w", err)
		}
		if !noPasskey && passkey.Registered() {
			return ErrEmailAlreadyInUse
		}

		_, session, err := p.webAuthn.BeginRegistration(&passkeyUser{user: user})
		if err != nil {
			return fmt.Errorf("beginning registration ceremony failed: %w", err)
		}

		if noPasskey {
			_, err = p.passkeyRepository.CreatePasskey(ctx, models.PasskeyCredential{UserID: user.ID, Challenge: session.Challenge})
		} else {
			err = p.passkeyRepository.UpdatePasskey(ctx, models.PasskeyUpdate{UserID: user.ID, Challenge: &session.Challenge})
		}
		if err != nil {
			return fmt.Errorf("storing registration challenge failed: %w", err)
		}

		init = models.PasskeyRegistrationInit{Challenge: session.Challenge, User: user}
		return nil
	})
	if err != nil {
		return models.PasskeyRegistrationInit{}, err
	}

	return init, nil
}

// FinalizeRegistration verifies the client's attestation against the
// persisted challenge and binds the authenticator. The binding is write-once;
// repeating the call fails with ErrAlreadyFinalized. A failed verification
// never binds anything.
func (p *passkeyService) FinalizeRegistration(ctx context.Context, userID string, attestation []byte) (models.AuthPayload, error) {
	log := logger.FromContext(ctx)

	id, err := uuid.Parse(userID)
	if err != nil {
		return models.AuthPayload{}, ErrInvalidUserIDFormat
	}

	user, err := p.userRepository.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.AuthPayload{}, ErrWrongUserID
		}

		log.Err(err).Str("userID", userID).Msg("user lookup failed")
		return models.AuthPayload{}, fmt.Errorf("user lookup failed: %w", err)
	}

	passkey, err := p.passkeyRepository.FindPasskeyByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNoPasskeyCredential) {
			return models.AuthPayload{}, ErrPasskeyNotRegistered
		}

		log.Err(err).Str("userID", userID).Msg("passkey lookup failed")
		return models.AuthPayload{}, fmt.Errorf("passkey lookup failed: %w", err)
	}
	if passkey.Registered() {
		return models.AuthPayload{}, ErrAlreadyFinalized
	}
	if passkey.Challenge == "" {
		return models.AuthPayload{}, ErrPasskeyNotRegistered
	}

	parsed, err := protocol.ParseCredentialCreationResponseBody(bytes.NewReader(attestation))
	if err != nil {
		return models.AuthPayload{}, fmt.Errorf("%w: %w", ErrUnprocessableEntity, err)
	}

	waUser := &passkeyUser{user: user}
	session := webauthn.SessionData{Challenge: passkey.Challenge, UserID: waUser.WebAuthnID()}

	credential, err := p.webAuthn.CreateCredential(waUser, session, parsed)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID).Msg("registration ceremony verification failed")
		return models.AuthPayload{}, fmt.Errorf("%w: %w", ErrUnprocessableEntity, err)
	}

	var payload models.AuthPayload
	err = p.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		_, err := p.passkeyRepository.CreateAuthenticator(ctx, models.PasskeyAuthenticator{
			PasskeyID:    passkey.ID,
			CredentialID: credential.ID,
			PublicKey:    credential.PublicKey,
			SignCount:    credential.Authenticator.SignCount,
		})
		if err != nil {
			if errors.Is(err, store.ErrAuthenticatorAlreadyBound) {
				return ErrAlreadyFinalized
			}
			return fmt.Errorf("binding authenticator failed: %w", err)
		}

		emptyChallenge := ""
		credentialID := base64.RawURLEncoding.EncodeToString(credential.ID)
		err = p.passkeyRepository.UpdatePasskey(ctx, models.PasskeyUpdate{
			UserID:       user.ID,
			Challenge:    &emptyChallenge,
			CredentialID: &credentialID,
		})
		if err != nil {
			return fmt.Errorf("clearing registration challenge failed: %w", err)
		}

		tokens, err := p.tokenService.IssueTokenPair(ctx, user.ID)
		if err != nil {
			return err
		}

		payload = models.AuthPayload{Tokens: tokens, User: user}
		return nil
	})
	if err != nil {
		return models.AuthPayload{}, err
	}

	log.Info().Str("userID", userID).Msg("passkey registration finalized")
	return payload, nil
}

// InitializeLogin issues a fresh login challenge for an account with a bound
// authenticator and returns it together with the stored credential id, so
// the client knows which authenticator to assert with.
func (p *passkeyService) InitializeLogin(ctx context.Context, email string) (models.PasskeyLoginInit, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return models.PasskeyLoginInit{}, err
	}

	user, passkey, err := p.findRegisteredPasskey(ctx, email)
	if err != nil {
		return models.PasskeyLoginInit{}, err
	}

	waUser := &passkeyUser{user: user, credentials: []webauthn.Credential{storedCredential(passkey.Authenticator)}}
	_, session, err := p.webAuthn.BeginLogin(waUser)
	if err != nil {
		return models.PasskeyLoginInit{}, fmt.Errorf("beginning login ceremony failed: %w", err)
	}

	err = p.passkeyRepository.UpdatePasskey(ctx, models.PasskeyUpdate{UserID: user.ID, Challenge: &session.Challenge})
	if err != nil {
		log.Err(err).Str("userID", user.ID.String()).Msg("storing login challenge failed")
		return models.PasskeyLoginInit{}, fmt.Errorf("storing login challenge failed: %w", err)
	}

	return models.PasskeyLoginInit{Challenge: session.Challenge, CredentialID: passkey.CredentialID}, nil
}

// FinalizeLogin verifies the client's assertion against the persisted
// challenge and the stored public key. The verifier tracks the authenticator
// signature counter; a counter that did not advance marks a cloned
// authenticator and the login is rejected. On success the advanced counter is
// persisted and a token pair is issued.
func (p *passkeyService) FinalizeLogin(ctx context.Context, email string, assertion []byte) (models.AuthPayload, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return models.AuthPayload{}, err
	}

	user, passkey, err := p.findRegisteredPasskey(ctx, email)
	if err != nil {
		return models.AuthPayload{}, err
	}
	if passkey.Challenge == "" {
		return models.AuthPayload{}, fmt.Errorf("%w: no login ceremony in flight", ErrUnprocessableEntity)
	}

	parsed, err := protocol.ParseCredentialRequestResponseBody(bytes.NewReader(assertion))
	if err != nil {
		return models.AuthPayload{}, fmt.Errorf("%w: %w", ErrUnprocessableEntity, err)
	}

	waUser := &passkeyUser{user: user, credentials: []webauthn.Credential{storedCredential(passkey.Authenticator)}}
	session := webauthn.SessionData{Challenge: passkey.Challenge, UserID: waUser.WebAuthnID()}

	validated, err := p.webAuthn.ValidateLogin(waUser, session, parsed)
	if err != nil {
		log.Warn().Err(err).Str("userID", user.ID.String()).Msg("login ceremony verification failed")
		return models.AuthPayload{}, fmt.Errorf("%w: %w", ErrUnprocessableEntity, err)
	}
	if validated.Authenticator.CloneWarning {
		log.Warn().Str("userID", user.ID.String()).Msg("authenticator signature counter did not advance")
		return models.AuthPayload{}, fmt.Errorf("%w: authenticator signature counter did not advance", ErrUnprocessableEntity)
	}

	var payload models.AuthPayload
	err = p.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := p.passkeyRepository.UpdateSignCount(ctx, passkey.ID, validated.Authenticator.SignCount); err != nil {
			return fmt.Errorf("persisting signature counter failed: %w", err)
		}

		emptyChallenge := ""
		if err := p.passkeyRepository.UpdatePasskey(ctx, models.PasskeyUpdate{UserID: user.ID, Challenge: &emptyChallenge}); err != nil {
			return fmt.Errorf("clearing login challenge failed: %w", err)
		}

		tokens, err := p.tokenService.IssueTokenPair(ctx, user.ID)
		if err != nil {
			return err
		}

		payload = models.AuthPayload{Tokens: tokens, User: user}
		return nil
	})
	if err != nil {
		return models.AuthPayload{}, err
	}

	return payload, nil
}

// findRegisteredPasskey loads the user and their passkey row, requiring a
// bound authenticator.
func (p *passkeyService) findRegisteredPasskey(ctx context.Context, email string) (models.User, models.PasskeyCredential, error) {
	log := logger.FromContext(ctx)

	user, err := p.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, models.PasskeyCredential{}, ErrUserNotRegistered
		}

		log.Err(err).Str("email", email).Msg("user lookup failed")
		return models.User{}, models.PasskeyCredential{}, fmt.Errorf("user lookup failed: %w", err)
	}

	passkey, err := p.passkeyRepository.FindPasskeyByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNoPasskeyCredential) {
			return models.User{}, models.PasskeyCredential{}, ErrPasskeyNotRegistered
		}

		log.Err(err).Str("userID", user.ID.String()).Msg("passkey lookup failed")
		return models.User{}, models.PasskeyCredential{}, fmt.Errorf("passkey lookup failed: %w", err)
	}
	if !passkey.Registered() {
		return models.User{}, models.PasskeyCredential{}, ErrPasskeyNotRegistered
	}

	return user, passkey, nil
}
