// SPDX-License-Identifier: Apache-2.0

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenPair is the access/refresh token pair handed to a client after a
// successful registration, login or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenRecord is the zero-or-one server-side record of a user's live
// refresh token. Only a keyed hash of the token is ever persisted; the
// plaintext exists solely on the client.
//
// The record is overwritten (never appended) on every refresh, so at most one
// refresh token per user is valid at any time ("latest wins" rotation). A
// logged-out user keeps the row with an empty hash.
type RefreshTokenRecord struct {
	// ID is the server-assigned identifier of the token row.
	ID int64 `json:"-"`

	// UserID is the owning user.
	UserID uuid.UUID `json:"-"`

	// RefreshTokenHash is the keyed HMAC digest of the live refresh token,
	// or empty when the user is logged out.
	RefreshTokenHash string `json:"-"`

	// UpdatedAt is the timestamp of the last rotation or revocation.
	UpdatedAt time.Time `json:"-"`
}

// LoggedIn reports whether a live refresh token is stored for the user.
func (r RefreshTokenRecord) LoggedIn() bool {
	return r.RefreshTokenHash != ""
}

// TableName returns the name of the database table
// associated with the RefreshTokenRecord model.
func (r RefreshTokenRecord) TableName() string {
	return "tokens"
}

// SessionClaims is the claims payload embedded in access and refresh tokens.
// The user ID travels in the standard "sub" claim.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// UserID extracts and parses the "sub" claim as a UUID.
func (c *SessionClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// PasswordResetClaims is the claims payload embedded in forgot-password
// tokens. The token proves control of an email address, so the email is the
// only domain claim it carries.
type PasswordResetClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
