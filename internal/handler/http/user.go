package http

import (
	"encoding/json"
	"net/http"

	"github.com/mealdrop/mealdrop/internal/logger"
	"github.com/mealdrop/mealdrop/internal/utils"
	"github.com/mealdrop/mealdrop/models"
)

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.changePassword").Msg("no user ID was given")
		utils.WriteError(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	var request models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.changePassword").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	err := h.services.AuthService.ChangePassword(ctx, userID, request.OldPassword, request.NewPassword)
	if err != nil {
		log.Err(err).Str("func", "*Handler.changePassword").Msg("password change failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteData(w, nil, http.StatusOK)
}
