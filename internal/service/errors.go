package service

import "errors"

// Typed failures raised by the service layer. The HTTP handler maps each one
// to a status code; callers branch with [errors.Is].
var (
	ErrEmailAlreadyInUse   = errors.New("email already in use")
	ErrUserNotRegistered   = errors.New("user is not registered")
	ErrWrongPassword       = errors.New("wrong password")
	ErrUserHasNoPassword   = errors.New("user has no password")
	ErrUserNotLoggedIn     = errors.New("user is not logged in")
	ErrInvalidUserIDFormat = errors.New("invalid user id format")

	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")

	ErrTokenExpired       = errors.New("token is expired")
	ErrInvalidTokenFormat = errors.New("invalid token format")
	ErrInvalidToken       = errors.New("invalid token")

	ErrAlreadyFinalized     = errors.New("passkey registration already finalized")
	ErrWrongUserID          = errors.New("wrong user id")
	ErrPasskeyNotRegistered = errors.New("passkey is not registered")

	// ErrUnprocessableEntity covers request payloads that are syntactically
	// valid but semantically unusable: failed input validation and WebAuthn
	// ceremony verification failures. The verifier's reason is wrapped in.
	ErrUnprocessableEntity = errors.New("unprocessable entity")

	ErrPasswordsMatch = errors.New("new password matches the current one")

	ErrTokenCreationFailed = errors.New("token creation failed")
)
