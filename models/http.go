package models

import "encoding/json"

// DataResponse is the success envelope of the REST API: every successful
// endpoint wraps its payload in {"data": ...}.
type DataResponse struct {
	Data any `json:"data"`
}

// ErrorResponse is the failure envelope of the REST API.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// AuthPayload is the response body of every flow that ends in token
// issuance: registration, login, refresh and both passkey finalize flows.
type AuthPayload struct {
	Tokens TokenPair `json:"tokens"`
	User   User      `json:"user"`
}

// PasskeyRegistrationInit is the response body of passkey
// registration-initialize: the fresh challenge plus the (possibly
// just-created) user summary.
type PasskeyRegistrationInit struct {
	Challenge string `json:"challenge"`
	User      User   `json:"user"`
}

// PasskeyLoginInit is the response body of passkey login-initialize. The
// stored credential ID tells the client which authenticator to assert with.
type PasskeyLoginInit struct {
	Challenge    string `json:"challenge"`
	CredentialID string `json:"credentialID"`
}

// RegisterRequest is the body of POST /api/auth/registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /api/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ForgetPasswordRequest is the body of POST /api/auth/forget_password.
type ForgetPasswordRequest struct {
	Email string `json:"email"`
}

// RecoverPasswordRequest is the body of POST /api/auth/recover_password.
type RecoverPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the body of PATCH /api/user/password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// PasskeyRegistrationInitRequest is the body of
// POST /api/auth/passkeys/registration/initialize.
type PasskeyRegistrationInitRequest struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// PasskeyRegistrationFinalizeRequest is the body of
// POST /api/auth/passkeys/registration/finalize. Attestation carries the
// untouched WebAuthn attestation response produced by the browser; it is
// parsed by the ceremony engine, not by the transport layer.
type PasskeyRegistrationFinalizeRequest struct {
	UserID      string          `json:"id"`
	Attestation json.RawMessage `json:"attestation"`
}

// PasskeyLoginInitRequest is the body of
// POST /api/auth/passkeys/login/initialize.
type PasskeyLoginInitRequest struct {
	Email string `json:"email"`
}

// PasskeyLoginFinalizeRequest is the body of
// POST /api/auth/passkeys/login/finalize. Assertion carries the untouched
// WebAuthn assertion response produced by the browser.
type PasskeyLoginFinalizeRequest struct {
	Email     string          `json:"email"`
	Assertion json.RawMessage `json:"assertion"`
}
