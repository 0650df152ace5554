package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordCredential is the zero-or-one password record attached to a user.
//
// PasswordHash is empty for passkey-only accounts that have never set a
// password. ForgetPasswordToken holds the single currently active
// password-reset token; it is overwritten by every new reset request and
// cleared when a reset completes.
type PasswordCredential struct {
	// ID is the server-assigned identifier of the credential row.
	ID int64 `json:"-"`

	// UserID is the owning user.
	UserID uuid.UUID `json:"-"`

	// PasswordHash is the bcrypt hash of the current password.
	// Empty for passkey-only accounts.
	PasswordHash string `json:"-"`

	// ForgetPasswordToken is the currently pending password-reset token,
	// or empty when no reset is in flight.
	ForgetPasswordToken string `json:"-"`

	// UpdatedAt is the timestamp of the last mutation.
	UpdatedAt time.Time `json:"-"`
}

// HasPassword reports whether the account has a password set.
// Accounts registered through the passkey flow may not have one.
func (c PasswordCredential) HasPassword() bool {
	return c.PasswordHash != ""
}

// TableName returns the name of the database table
// associated with the PasswordCredential model.
func (c PasswordCredential) TableName() string {
	return "user_passwords"
}
