package http

import (
	"encoding/json"
	"net/http"

	"github.com/mealdrop/mealdrop/internal/logger"
	"github.com/mealdrop/mealdrop/internal/utils"
	"github.com/mealdrop/mealdrop/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	payload, err := h.services.AuthService.Register(ctx, request.Email, request.Password, request.Role)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("registration failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	log.Debug().Str("userID", payload.User.ID.String()).Msg("user registered")

	utils.WriteData(w, payload, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	payload, err := h.services.AuthService.Login(ctx, request.Email, request.Password)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("login failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	log.Debug().Str("userID", payload.User.ID.String()).Msg("user logged in")

	utils.WriteData(w, payload, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.refresh").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	tokens, err := h.services.AuthService.Refresh(ctx, request.RefreshToken)
	if err != nil {
		log.Err(err).Str("func", "*Handler.refresh").Msg("token refresh failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteData(w, tokens, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.logout").Msg("no user ID was given")
		utils.WriteError(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	if err := h.services.AuthService.Logout(ctx, userID); err != nil {
		log.Err(err).Str("func", "*Handler.logout").Msg("logout failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteData(w, nil, http.StatusOK)
}

func (h *Handler) forgetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.ForgetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.forgetPassword").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ForgetPassword(ctx, request.Email); err != nil {
		log.Err(err).Str("func", "*Handler.forgetPassword").Msg("forget password failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	// accepted regardless of whether the email is on file
	utils.WriteData(w, nil, http.StatusAccepted)
}

func (h *Handler) recoverPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RecoverPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.recoverPassword").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.RecoverPassword(ctx, request.Token, request.Password); err != nil {
		log.Err(err).Str("func", "*Handler.recoverPassword").Msg("password recovery failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteData(w, nil, http.StatusOK)
}
