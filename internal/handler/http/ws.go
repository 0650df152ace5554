// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/mealdrop/mealdrop/internal/logger"
	"github.com/mealdrop/mealdrop/internal/utils"
)

var courierUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// courierSocket upgrades the connection to a websocket for courier clients.
//
// The access token is validated BEFORE the upgrade: native courier apps
// cannot always set headers on the websocket handshake, so the token is
// accepted either as a bearer "Authorization" header or as a "token" query
// parameter. Rejections are written as the regular JSON error envelope while
// the connection is still plain HTTP.
//
// The connection itself runs a liveness loop: every received frame is echoed
// back unchanged until the client disconnects.
func (h *Handler) courierSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tokenString, err := accessTokenFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.courierSocket").Send()
		utils.WriteError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	userID, err := h.services.TokenService.ValidateAccessToken(ctx, tokenString)
	if err != nil {
		log.Err(err).Str("func", "*Handler.courierSocket").Msg("access token rejected")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	conn, err := courierUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written its own error response
		log.Err(err).Str("func", "*Handler.courierSocket").Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log.Info().Str("userID", userID.String()).Msg("courier socket connected")

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if err := conn.WriteMessage(messageType, message); err != nil {
			break
		}
	}

	log.Info().Str("userID", userID.String()).Msg("courier socket disconnected")
}

// accessTokenFromRequest extracts the access token from the "Authorization"
// header, falling back to the "token" query parameter.
func accessTokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		return utils.ParseBearerToken(authHeader)
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", ErrNoAccessToken
}
