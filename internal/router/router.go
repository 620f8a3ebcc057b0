// Package router sets up all HTTP routes and middleware chains for the
// deckgen API. Everything except health and auth requires a session.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"deckgen/internal/handlers"
	"deckgen/internal/middleware"
	"deckgen/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, auth *handlers.Auth, presentations *handlers.Presentations, admin *handlers.Admin) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check, no auth.
	r.Get("/health", healthHandler)

	// Auth endpoints. Login and register are rate limited to slow down
	// credential stuffing.
	r.Route("/auth", func(r chi.Router) {
		limiter := middleware.NewRateLimiter(10, time.Minute)
		r.With(limiter.Middleware).Post("/register", auth.Register)
		r.With(limiter.Middleware).Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", auth.Me)
		})
	})

	// Presentations: the authenticated API surface. Endpoints that trigger
	// LLM generation share a limiter so one client cannot drain the queue.
	r.Route("/presentations", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		genLimiter := middleware.NewRateLimiter(20, time.Minute)

		r.With(genLimiter.Middleware).Post("/", presentations.Create)
		r.Get("/", presentations.List)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", presentations.Get)
			r.Patch("/", presentations.Update)
			r.Delete("/", presentations.Delete)
			r.With(genLimiter.Middleware).Post("/generate", presentations.Generate)
			r.Get("/download", presentations.Download)
		})
	})

	// Operator endpoints, admin only.
	r.Route("/admin/ai", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireAdmin)

		r.Get("/provider", admin.ProviderStatus)
		r.Put("/provider", admin.SetProvider)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
