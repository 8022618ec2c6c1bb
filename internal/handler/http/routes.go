package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Handle("/static/*", staticHandler())
	router.Get("/version", h.getServerVersion)

	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		r.Use(h.withIdentity)
		r.Use(h.withCSRF)

		r.Get("/", h.home)

		r.Get("/register", h.showRegister)
		r.Post("/register", h.register)
		r.Get("/login", h.showLogin)
		r.Post("/login", h.login)
		r.Get("/logout", h.logout)

		r.Route("/users/{username}", func(r chi.Router) {
			r.Get("/", h.showUser)
			r.Post("/delete", h.deleteUser)
			r.Get("/feedback/add", h.showAddFeedback)
			r.Post("/feedback/add", h.addFeedback)
		})

		r.Route("/feedback/{feedbackID}", func(r chi.Router) {
			r.Get("/update", h.showEditFeedback)
			r.Post("/update", h.editFeedback)
			r.Post("/delete", h.deleteFeedback)
		})

		r.NotFound(h.notFound)
		r.MethodNotAllowed(CheckHTTPMethod(h.notFound))
	})

	return router
}
