package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to create a user
	// fails because a user with the same email (case-insensitively) already
	// exists in the database.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoPasswordCredential is returned when a user has no password
	// credential row (passkey-only accounts, or accounts that never
	// requested a password reset).
	ErrNoPasswordCredential = errors.New("no password credential was found")

	// ErrNoTokenRecord is returned when a user has no refresh-token row,
	// meaning that no token pair has ever been issued for the account.
	ErrNoTokenRecord = errors.New("no refresh token record was found")

	// ErrNoPasskeyCredential is returned when a user has no passkey row,
	// meaning that no registration ceremony was ever initialized.
	ErrNoPasskeyCredential = errors.New("no passkey credential was found")

	// ErrAuthenticatorAlreadyBound is returned when a second authenticator
	// binding is attempted for a passkey record. The binding is write-once.
	ErrAuthenticatorAlreadyBound = errors.New("authenticator already bound")

	// ErrDatabase labels any storage failure that does not map to one of
	// the domain sentinels above. Repository methods log the raw driver
	// error and wrap it with this sentinel before returning, so a raw
	// driver error never escapes the store package unlabeled.
	ErrDatabase = errors.New("database error")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")
)
