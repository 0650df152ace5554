package http

import (
	"encoding/json"
	"net/http"

	"github.com/mealdrop/mealdrop/internal/logger"
	"github.com/mealdrop/mealdrop/internal/utils"
	"github.com/mealdrop/mealdrop/models"
)

func (h *Handler) passkeyRegistrationInitialize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.PasskeyRegistrationInitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.passkeyRegistrationInitialize").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	init, err := h.services.PasskeyService.InitializeRegistration(ctx, request.Email, request.Role)
	if err != nil {
		log.Err(err).Str("func", "*Handler.passkeyRegistrationInitialize").Msg("passkey registration initialize failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteData(w, init, http.StatusOK)
}

func (h *Handler) passkeyRegistrationFinalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.PasskeyRegistrationFinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.passkeyRegistrationFinalize").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	payload, err := h.services.PasskeyService.FinalizeRegistration(ctx, request.UserID, request.Attestation)
	if err != nil {
		log.Err(err).Str("func", "*Handler.passkeyRegistrationFinalize").Msg("passkey registration finalize failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	log.Debug().Str("userID", payload.User.ID.String()).Msg("passkey registered")

	utils.WriteData(w, payload, http.StatusCreated)
}

func (h *Handler) passkeyLoginInitialize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.PasskeyLoginInitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.passkeyLoginInitialize").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	init, err := h.services.PasskeyService.InitializeLogin(ctx, request.Email)
	if err != nil {
		log.Err(err).Str("func", "*Handler.passkeyLoginInitialize").Msg("passkey login initialize failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteData(w, init, http.StatusOK)
}

func (h *Handler) passkeyLoginFinalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.PasskeyLoginFinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.passkeyLoginFinalize").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	payload, err := h.services.PasskeyService.FinalizeLogin(ctx, request.Email, request.Assertion)
	if err != nil {
		log.Err(err).Str("func", "*Handler.passkeyLoginFinalize").Msg("passkey login finalize failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	log.Debug().Str("userID", payload.User.ID.String()).Msg("user logged in with passkey")

	utils.WriteData(w, payload, http.StatusOK)
}
