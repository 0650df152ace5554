package store

const (
	createUser = `INSERT INTO users (id, email, role)
    VALUES ($1, $2, $3)
    RETURNING created_at;`

	findUserByEmail = `SELECT id, email, role, created_at
    FROM users
    WHERE lower(email) = lower($1);`

	findUserByID = `SELECT id, email, role, created_at
    FROM users
    WHERE id = $1;`

	createPasswordCredential = `INSERT INTO user_passwords (user_id, password_hash)
    VALUES ($1, $2)
    RETURNING id, updated_at;`

	findPasswordByUserID = `SELECT id, user_id, password_hash, forget_password_token, updated_at
    FROM user_passwords
    WHERE user_id = $1;`

	updatePassword = `UPDATE user_passwords
    SET password_hash = $2, updated_at = NOW()
    WHERE user_id = $1;`

	setForgetPasswordToken = `UPDATE user_passwords
    SET forget_password_token = $2, updated_at = NOW()
    WHERE user_id = $1;`

	updatePasswordAndClearResetToken = `UPDATE user_passwords
    SET password_hash = $2, forget_password_token = '', updated_at = NOW()
    WHERE user_id = $1;`

	findTokenByUserID = `SELECT id, user_id, refresh_token, updated_at
    FROM tokens
    WHERE user_id = $1;`

	upsertRefreshToken = `INSERT INTO tokens (user_id, refresh_token)
    VALUES ($1, $2)
    ON CONFLICT (user_id) DO UPDATE
    SET refresh_token = EXCLUDED.refresh_token, updated_at = NOW();`

	clearRefreshToken = `UPDATE tokens
    SET refresh_token = '', updated_at = NOW()
    WHERE user_id = $1;`

	createPasskey = `INSERT INTO user_passkeys (user_id, challenge)
    VALUES ($1, $2)
    RETURNING id, created_at;`

	findPasskeyByUserID = `SELECT p.id, p.user_id, p.challenge, p.credential_id, p.created_at,
        a.id, a.credential_id, a.credential_public_key, a.counter
    FROM user_passkeys p
    LEFT JOIN passkeys_authenticators a ON a.user_passkeys_id = p.id
    WHERE p.user_id = $1;`

	createAuthenticator = `INSERT INTO passkeys_authenticators (user_passkeys_id, credential_id, credential_public_key, counter)
    VALUES ($1, $2, $3, $4)
    RETURNING id;`

	updateAuthenticatorSignCount = `UPDATE passkeys_authenticators
    SET counter = $2
    WHERE user_passkeys_id = $1;`
)
