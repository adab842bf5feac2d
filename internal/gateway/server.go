package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// buildRouter constructs the chi mux with all routes wired.
func (g *Gateway) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(g.metrics.middleware)
	r.Use(identityMiddleware)

	// Public — no auth required.
	r.Get("/health", g.handleHealth())
	r.Handle("/metrics", g.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", g.handleChat())
		r.Get("/game/views", g.handleGameViews())
	})

	// Admin endpoints — auth required. Not mounted if no auth configured.
	if g.config.Auth.IsConfigured() {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(g.config.Auth))
			r.Get("/status", g.handleStatus())
			r.Route("/api/admin", func(r chi.Router) {
				r.Get("/limits/{id}", g.handleLimitStats())
				r.Post("/limits/{id}/reset", g.handleLimitReset())
				r.Delete("/sessions/{id}", g.handlePurgeSession())
			})
		})
	}

	return r
}
