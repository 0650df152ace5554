package http

import (
	"net/http"
	"time"

	"github.com/mealdrop/mealdrop/internal/logger"
)

// withLogging emits one access-log line per request. Courier websocket
// upgrades hijack the connection, so for those the recorded status and
// size stay zero and the line marks the start of the session instead.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		log.Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Str("remote_addr", r.RemoteAddr).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
