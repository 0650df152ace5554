package models

import (
	"time"

	"github.com/google/uuid"
)

// PasskeyCredential is the zero-or-one WebAuthn record attached to a user.
//
// Challenge holds the single-use challenge of the ceremony currently in
// flight (registration or login); it is overwritten every time a new ceremony
// is initialized. CredentialID is the client-side identifier of the bound
// authenticator, set during registration-finalize.
type PasskeyCredential struct {
	// ID is the server-assigned identifier of the passkey row.
	ID int64 `json:"-"`

	// UserID is the owning user.
	UserID uuid.UUID `json:"-"`

	// Challenge is the pending ceremony challenge (base64url-encoded).
	Challenge string `json:"-"`

	// CredentialID is the base64url credential identifier reported by the
	// client, used by login-initialize so the client knows which
	// authenticator to assert with. Empty until registration finalizes.
	CredentialID string `json:"-"`

	// Authenticator is the bound authenticator, nil until
	// registration-finalize verification succeeds.
	Authenticator *PasskeyAuthenticator `json:"-"`

	// CreatedAt is the timestamp when the passkey record was created.
	CreatedAt time.Time `json:"-"`
}

// Registered reports whether an authenticator has been bound to the record,
// i.e. whether the registration ceremony has been finalized.
func (p PasskeyCredential) Registered() bool {
	return p.Authenticator != nil
}

// TableName returns the name of the database table
// associated with the PasskeyCredential model.
func (p PasskeyCredential) TableName() string {
	return "user_passkeys"
}

// PasskeyUpdate carries a partial update of a passkey record. Nil fields are
// left untouched.
type PasskeyUpdate struct {
	UserID       uuid.UUID
	Challenge    *string
	CredentialID *string
}

// PasskeyAuthenticator is the write-once authenticator sub-record bound to a
// PasskeyCredential after a verified registration ceremony.
//
// SignCount is the only mutable field: it is advanced after every verified
// login assertion and must never decrease (cloned-authenticator defense).
type PasskeyAuthenticator struct {
	// ID is the server-assigned identifier of the authenticator row.
	ID int64 `json:"-"`

	// PasskeyID is the owning PasskeyCredential row.
	PasskeyID int64 `json:"-"`

	// CredentialID is the raw WebAuthn credential identifier.
	CredentialID []byte `json:"-"`

	// PublicKey is the COSE-encoded credential public key.
	PublicKey []byte `json:"-"`

	// SignCount is the authenticator's monotonic signature counter.
	SignCount uint32 `json:"-"`
}

// TableName returns the name of the database table
// associated with the PasskeyAuthenticator model.
func (a PasskeyAuthenticator) TableName() string {
	return "passkeys_authenticators"
}
