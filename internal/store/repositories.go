package store

import "github.com/mealdrop/mealdrop/internal/logger"

// Repositories bundles all PostgreSQL-backed repositories together with the
// Transactor that lets the service layer run multi-step writes atomically.
type Repositories struct {
	Transactor Transactor

	UserRepository     UserRepository
	PasswordRepository PasswordRepository
	TokenRepository    TokenRepository
	PasskeyRepository  PasskeyRepository
}

func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		Transactor:         db,
		UserRepository:     NewUserRepository(db, logger),
		PasswordRepository: NewPasswordRepository(db, logger),
		TokenRepository:    NewTokenRepository(db, logger),
		PasskeyRepository:  NewPasskeyRepository(db, logger),
	}
}
