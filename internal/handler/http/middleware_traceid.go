package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Trace id header shared with the mobile clients and the courier gateway.
// Callers that already carry one keep it, so a delivery flow spanning
// several auth calls correlates under a single id.
const traceIDHeader = "X-Trace-ID"

// withTraceID tags the request logger with a trace id and echoes the id
// back in the response header.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := requestTraceID(r)

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}

func requestTraceID(r *http.Request) string {
	if traceID := r.Header.Get(traceIDHeader); traceID != "" {
		return traceID
	}
	return uuid.NewString()
}
