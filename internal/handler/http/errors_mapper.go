package http

import (
	"errors"
	"net/http"

	"github.com/mealdrop/mealdrop/internal/service"
	"github.com/mealdrop/mealdrop/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrEmailAlreadyInUse:   http.StatusConflict,
	service.ErrUserNotRegistered:   http.StatusNotFound,
	service.ErrWrongPassword:       http.StatusUnauthorized,
	service.ErrUserHasNoPassword:   http.StatusUnauthorized,
	service.ErrUserNotLoggedIn:     http.StatusUnauthorized,
	service.ErrInvalidUserIDFormat: http.StatusBadRequest,

	service.ErrRefreshTokenNotFound: http.StatusUnauthorized,
	service.ErrRefreshTokenExpired:  http.StatusUnauthorized,

	service.ErrTokenExpired:       http.StatusUnauthorized,
	service.ErrInvalidTokenFormat: http.StatusUnauthorized,
	service.ErrInvalidToken:       http.StatusUnauthorized,

	service.ErrAlreadyFinalized:     http.StatusConflict,
	service.ErrWrongUserID:          http.StatusNotFound,
	service.ErrPasskeyNotRegistered: http.StatusNotFound,

	service.ErrUnprocessableEntity: http.StatusUnprocessableEntity,
	service.ErrPasswordsMatch:      http.StatusBadRequest,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,

	store.ErrEmailAlreadyExists:        http.StatusConflict,
	store.ErrNoUserWasFound:            http.StatusNotFound,
	store.ErrNoPasswordCredential:      http.StatusNotFound,
	store.ErrNoTokenRecord:             http.StatusUnauthorized,
	store.ErrNoPasskeyCredential:       http.StatusNotFound,
	store.ErrAuthenticatorAlreadyBound: http.StatusConflict,

	store.ErrDatabase:             http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
