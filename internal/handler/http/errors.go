// SPDX-License-Identifier: Apache-2.0

package http

import "errors"

// Sentinel errors used when extracting credentials from an incoming request.
// Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrNoAccessToken is returned by the websocket handshake when neither
	// the "Authorization" header nor the "token" query parameter carries an
	// access token.
	ErrNoAccessToken = errors.New("no access token provided")
)
