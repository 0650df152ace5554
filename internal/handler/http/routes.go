package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)

	router.Route("/api/auth", func(r chi.Router) {
		// routes without authorization
		r.Post("/registration", h.register)
		r.Post("/login", h.login)
		r.Post("/refresh", h.refresh)
		r.Post("/forget_password", h.forgetPassword)
		r.Post("/recover_password", h.recoverPassword)

		r.Route("/passkeys", func(r chi.Router) {
			r.Post("/registration/initialize", h.passkeyRegistrationInitialize)
			r.Post("/registration/finalize", h.passkeyRegistrationFinalize)
			r.Post("/login/initialize", h.passkeyLoginInitialize)
			r.Post("/login/finalize", h.passkeyLoginFinalize)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/logout", h.logout)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Patch("/api/user/password", h.changePassword)
	})

	// the websocket handshake validates the token itself: courier clients
	// may pass it as a query parameter instead of a header
	router.Get("/ws/courier", h.courierSocket)

	return router
}
