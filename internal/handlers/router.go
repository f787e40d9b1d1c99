package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Middleware *Middleware
	Auth       *AuthHandler
	Blog       *BlogHandler
	Category   *CategoryHandler
	Project    *ProjectHandler
	Contact    *ContactHandler
	Staff      *StaffHandler
	Stats      *StatsHandler
}

// NewRouter builds the HTTP routing table. Public content endpoints come
// first, then the staff auth endpoints, then the bearer-protected back
// office under /admin.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logging)
	r.Use(Recover)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public site.
	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", h.Blog.ListPublished)
		r.Get("/{slug}", h.Blog.GetBySlug)
	})
	r.Get("/blog-types", h.Blog.ListTypes)
	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.Project.ListPublished)
		r.Get("/{slug}", h.Project.GetBySlug)
	})
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.Category.List)
		r.Get("/{slug}", h.Category.GetBySlug)
	})
	r.Route("/contacts", func(r chi.Router) {
		r.Post("/", h.Contact.Submit)
		r.Get("/status", h.Contact.Status)
	})

	// Staff authentication.
	r.Route("/auths/staff", func(r chi.Router) {
		r.With(h.Middleware.ThrottleLogin).Post("/login", h.Auth.Login)
		r.Post("/refresh-token", h.Auth.Refresh)
		r.Post("/logout", h.Auth.Logout)
		r.With(h.Middleware.ThrottleLogin).Post("/forgot-password", h.Auth.ForgotPassword)
		r.Post("/reset-password", h.Auth.ResetPassword)
		r.Get("/google/start", h.Auth.StartGoogleOAuth)
		r.Get("/google/callback", h.Auth.GoogleOAuthCallback)
	})

	// Back office.
	r.Route("/admin", func(r chi.Router) {
		r.Use(h.Middleware.RequireAuth)

		r.Get("/me", h.Auth.Me)
		r.Post("/me/password", h.Staff.ChangePassword)
		r.Get("/stats", h.Stats.Dashboard)

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", h.Blog.List)
			r.Post("/", h.Blog.Create)
			r.Get("/{id}", h.Blog.Get)
			r.Put("/{id}", h.Blog.Update)
			r.Delete("/{id}", h.Blog.Delete)
		})
		r.Route("/blog-types", func(r chi.Router) {
			r.Get("/", h.Blog.ListTypes)
			r.Post("/", h.Blog.CreateType)
			r.Put("/{id}", h.Blog.UpdateType)
			r.Delete("/{id}", h.Blog.DeleteType)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Category.List)
			r.Post("/", h.Category.Create)
			r.Get("/{id}", h.Category.Get)
			r.Put("/{id}", h.Category.Update)
			r.Delete("/{id}", h.Category.Delete)
		})
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.Project.List)
			r.Post("/", h.Project.Create)
			r.Get("/{id}", h.Project.Get)
			r.Put("/{id}", h.Project.Update)
			r.Delete("/{id}", h.Project.Delete)
		})
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", h.Contact.List)
			r.Get("/{id}", h.Contact.Get)
			r.Put("/{id}/status", h.Contact.UpdateStatus)
			r.Delete("/{id}", h.Contact.Delete)
		})

		// Staff management is admin only.
		r.Route("/staffs", func(r chi.Router) {
			r.Use(h.Middleware.RequireAdmin)
			r.Get("/", h.Staff.List)
			r.Post("/", h.Staff.Create)
			r.Get("/{id}", h.Staff.Get)
			r.Put("/{id}", h.Staff.Update)
			r.Delete("/{id}", h.Staff.Delete)
		})
	})

	return r
}
