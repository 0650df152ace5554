package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// TokenPurpose scopes a keyed token digest to a single use so that a digest
// computed for one purpose can never match a digest stored for another.
type TokenPurpose string

const (
	// PurposeRefreshToken scopes digests of refresh tokens at rest.
	PurposeRefreshToken TokenPurpose = "refresh"
)

// MinBcryptCost is the lowest accepted bcrypt cost factor. Configured costs
// below this value are raised to it.
const MinBcryptCost = 10

// HashPassword hashes a plaintext password with bcrypt using the given cost
// factor. A fresh random salt is generated on every call, so two hashes of
// the same password never compare equal as strings; use VerifyPassword for
// equality checks.
//
// Costs below MinBcryptCost are raised to MinBcryptCost.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the given bcrypt hash.
//
// The comparison is performed by bcrypt itself and is constant-time with
// respect to the password. Malformed hashes fail closed: the function
// returns false rather than an error, leaving the decision of how to signal
// a wrong password to the service layer.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// HashOpaqueToken computes a deterministic keyed HMAC-SHA256 digest of an
// opaque bearer token and returns it hex-encoded.
//
// Unlike password hashing, token-at-rest hashing must be deterministic so
// that the stored value can be compared against a re-derived digest of the
// presented token with a plain equality check. The server-side salt keeps
// the digest infeasible to invert, and the purpose is mixed into the key so
// digests never collide across uses.
func HashOpaqueToken(token string, purpose TokenPurpose, salt string) string {
	hasher := hmac.New(sha256.New, []byte(salt+":"+string(purpose)))
	hasher.Write([]byte(token))
	return hex.EncodeToString(hasher.Sum(nil))
}
