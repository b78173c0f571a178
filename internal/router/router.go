// Package router sets up all HTTP routes and middleware chains for the
// portfolio site. Routes fall into two groups: public pages (gallery,
// project detail, contact form) and the /admin panel behind the full
// auth chain.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"devfolio/internal/handlers"
	"devfolio/internal/middleware"
	"devfolio/internal/session"
	"devfolio/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The limiter throttles the credential-guessing
// and spam surfaces: the login form and the public contact form.
func New(sessions *session.Store, roles middleware.RoleChecker, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request. CSRF sits here rather
	// than under /admin because the public contact form also needs tokens.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CSRF)
	r.Use(middleware.LoadSession(sessions))

	// Health check for container orchestration probes.
	r.Get("/health", healthHandler)

	// Embedded static assets.
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	// Admin routes.
	r.Route("/admin", func(r chi.Router) {
		// Auth pages, accessible without a session.
		r.Get("/login", auth.LoginPage)
		r.With(limiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA requires auth but NOT completed verification. The setup form
		// posts its confirmation code to the same submit handler, which
		// enables TOTP on first successful verify.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Post("/2fa/setup", auth.TwoFAVerifySubmit)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// Authenticated, 2FA-verified, role-checked admin area. The role
		// check runs against the database on every request so a revoked
		// admin loses access immediately.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Use(middleware.RequireAdmin(roles))

			r.Get("/", admin.Dashboard)
			r.Get("/dashboard", admin.Dashboard)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", admin.Projects)
				r.Get("/new", admin.NewProjectForm)
				r.Post("/", admin.CreateProject)
				r.Get("/{id}", admin.EditProjectForm)
				r.Post("/{id}", admin.UpdateProject)
				r.Post("/{id}/delete", admin.DeleteProject)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.Categories)
				r.Post("/", admin.CreateCategory)
				r.Post("/{id}", admin.UpdateCategory)
				r.Post("/{id}/delete", admin.DeleteCategory)
			})

			r.Get("/messages", admin.Messages)
		})
	})

	// Public routes.
	r.Get("/", public.Home)
	r.Get("/project/{id}", public.Project)
	r.With(limiter.Middleware).Post("/contact", public.ContactSubmit)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
