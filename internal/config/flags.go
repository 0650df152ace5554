package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-access-secret access token signing secret
//	-refresh-secret refresh token signing secret
//	-reset-secret forgot-password token signing secret
//	-token-hash-salt salt for refresh-token-at-rest hashing
//	-token-issuer token issuer name
//	-access-ttl access token lifetime (e.g., "30m")
//	-refresh-ttl refresh token lifetime (e.g., "336h")
//	-reset-ttl forgot-password token lifetime (e.g., "1h")
//	-bcrypt-cost bcrypt cost factor for password hashing
//	-rp-name, -rp-id, -rp-origin WebAuthn relying-party settings
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var databaseDSN string
	var jsonConfigPath string
	var accessSecret, refreshSecret, resetSecret string
	var tokenHashSalt string
	var tokenIssuer string
	var accessTTL, refreshTTL, resetTTL time.Duration
	var bcryptCost int
	var rpName, rpID, rpOrigin string
	var requestTimeout time.Duration

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&accessSecret, "access-secret", "", "Access token signing secret")
	flag.StringVar(&refreshSecret, "refresh-secret", "", "Refresh token signing secret")
	flag.StringVar(&resetSecret, "reset-secret", "", "Forgot-password token signing secret")
	flag.StringVar(&tokenHashSalt, "token-hash-salt", "", "Salt for refresh-token-at-rest hashing")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&accessTTL, "access-ttl", 0, "Access token lifetime (e.g., 30m)")
	flag.DurationVar(&refreshTTL, "refresh-ttl", 0, "Refresh token lifetime (e.g., 336h)")
	flag.DurationVar(&resetTTL, "reset-ttl", 0, "Forgot-password token lifetime (e.g., 1h)")
	flag.IntVar(&bcryptCost, "bcrypt-cost", 0, "Bcrypt cost factor")
	flag.StringVar(&rpName, "rp-name", "", "WebAuthn relying-party display name")
	flag.StringVar(&rpID, "rp-id", "", "WebAuthn relying-party id")
	flag.StringVar(&rpOrigin, "rp-origin", "", "WebAuthn relying-party origin")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		Auth: Auth{
			AccessTokenSecret:  accessSecret,
			RefreshTokenSecret: refreshSecret,
			ResetTokenSecret:   resetSecret,
			TokenHashSalt:      tokenHashSalt,
			TokenIssuer:        tokenIssuer,
			AccessTokenTTL:     accessTTL,
			RefreshTokenTTL:    refreshTTL,
			ResetTokenTTL:      resetTTL,
			BcryptCost:         bcryptCost,
		},
		Passkeys: Passkeys{
			RPDisplayName: rpName,
			RPID:          rpID,
			RPOrigin:      rpOrigin,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}
