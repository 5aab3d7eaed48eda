// Package router sets up all HTTP routes and middleware chains for the
// recipe catalogue. JSON API routes live under /api; everything else
// is the bundled browser UI.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recipebox/internal/handlers"
	"recipebox/internal/middleware"
)

// New creates and returns the configured Chi router. limiter may be nil,
// which disables rate limiting.
func New(health http.Handler, categories *handlers.Categories, recipes *handlers.Recipes, ui http.Handler, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, outermost first. Recoverer sits inside Logger
	// and Metrics so recovered panics are recorded as 500s.
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.NotFound(handlers.NotFound)
		r.MethodNotAllowed(handlers.MethodNotAllowed)

		r.Method(http.MethodGet, "/health", health)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Post("/", categories.Create)
			r.Put("/{id}", categories.Update)
			r.Delete("/{id}", categories.Delete)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipes.List)
			r.Post("/", recipes.Create)
			r.Put("/{id}", recipes.Update)
			r.Delete("/{id}", recipes.Delete)
		})
	})

	r.Method(http.MethodGet, "/*", ui)

	return r
}
