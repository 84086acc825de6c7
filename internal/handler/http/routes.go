package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withMetrics)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/api/version", h.getServerVersion)
	router.Handle("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/login", h.login)
		r.Get("/api/user/avatar/{file}", h.avatar)
	})

	// a token is optional: when valid, its owner is echoed as the creator
	router.Group(func(r chi.Router) {
		r.Use(h.optionalAuth)
		r.Post("/api/user/register", h.register)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/user/profile/{id}", h.profile)
		r.Get("/api/user/list", h.listUsers)
		r.Get("/api/user/list/{page}", h.listUsers)
		r.Put("/api/user/update", h.update)
		r.Post("/api/user/upload", h.upload)
		r.Delete("/api/user/{id}", h.deleteUser)
		r.With(h.requireAdmin).Get("/api/user/all", h.allUsers)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
