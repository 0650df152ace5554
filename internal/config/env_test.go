// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TOKEN_SECRET", "env-access")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL", "168h")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env/mealdrop")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9000")
	t.Setenv("PASSKEYS_RP_ID", "mealdrop.app")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "env-access", cfg.Auth.AccessTokenSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, "postgres://env/mealdrop", cfg.Storage.DB.DSN)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, "mealdrop.app", cfg.Passkeys.RPID)
}

func TestParseEnv_BadDuration(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TOKEN_TTL", "not-a-duration")

	cfg := &StructuredConfig{}
	assert.Error(t, parseEnv(cfg))
}
