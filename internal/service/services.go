package service

import (
	"github.com/mealdrop/mealdrop/internal/config"
	"github.com/mealdrop/mealdrop/internal/logger"
	"github.com/mealdrop/mealdrop/internal/store"
)

type Services struct {
	AuthService    AuthService
	TokenService   TokenService
	PasskeyService PasskeyService
}

func NewServices(repositories *store.Repositories, cfg config.StructuredConfig, mail MailDispatcher, logger *logger.Logger) (*Services, error) {
	tokenService := NewTokenService(repositories.TokenRepository, cfg.Auth, logger)

	passkeyService, err := NewPasskeyService(repositories, tokenService, cfg.Passkeys, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(repositories, tokenService, mail, cfg.Auth, cfg.Mail, logger),
		TokenService:   tokenService,
		PasskeyService: passkeyService,
	}, nil
}
