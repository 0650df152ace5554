// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mealdrop/mealdrop/models"
)

// GenerateSessionToken creates a signed HMAC-SHA256 JWT for a user session.
// The same function serves both access and refresh tokens; the caller
// distinguishes the purposes by signing with a purpose-specific secret and
// TTL.
//
// The token carries the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID in canonical UUID form
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus ttl
//   - ID        (jti): a random UUID making every token distinct
//
// The jti matters beyond tracing: iat/exp are truncated to whole seconds, so
// without it two tokens minted in the same second for the same user would be
// byte-identical and refresh rotation could hand back the token it just
// retired.
//
// Returns an error if any parameter is empty or zero, or if signing fails.
func GenerateSessionToken(issuer string, userID uuid.UUID, ttl time.Duration, signKey string) (string, error) {
	if issuer == "" || ttl == 0 || signKey == "" || userID == uuid.Nil {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return tokenString, nil
}

// GenerateResetToken creates a signed HMAC-SHA256 JWT proving control of an
// email address, used by the forgot-password flow. The email travels in a
// dedicated claim; there is no subject because the account may be looked up
// by email only.
func GenerateResetToken(issuer, email string, ttl time.Duration, signKey string) (string, error) {
	if issuer == "" || email == "" || ttl == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &models.PasswordResetClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return tokenString, nil
}

// ParseSessionToken validates a raw session (access or refresh) token string
// against the given secret and issuer and returns its claims.
//
// Validation covers the signature, the exp claim and the iss claim. Errors
// are returned unwrapped from the jwt library so callers can distinguish
// expiry (jwt.ErrTokenExpired), malformed input or a wrong secret
// (jwt.ErrTokenMalformed, jwt.ErrTokenSignatureInvalid) and any other
// verification failure with errors.Is.
func ParseSessionToken(tokenString, signKey, issuer string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// ParseResetToken validates a raw forgot-password token string against the
// given secret and issuer and returns its claims. Error semantics match
// ParseSessionToken.
func ParseResetToken(tokenString, signKey, issuer string) (*models.PasswordResetClaims, error) {
	claims := &models.PasswordResetClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// ParseBearerToken extracts the bearer token from a raw "Authorization"
// header value of the form "Bearer <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
