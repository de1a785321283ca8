package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tableside/internal/httpx"
	"tableside/internal/models"
	"tableside/internal/services/auth"
	"tableside/internal/services/menu"
	"tableside/internal/services/order"
	"tableside/internal/services/stats"
	"tableside/internal/services/table"
)

// Handlers collects the per-service HTTP handlers the router mounts
type Handlers struct {
	Auth   *auth.Handler
	Menu   *menu.Handler
	Table  *table.Handler
	Order  *order.Handler
	Stats  *stats.Handler
}

// NewRouter builds the HTTP routing tree. Public routes are reachable by
// anyone; staff routes require a staff or admin session; admin routes
// require admin.
func NewRouter(h Handlers, mw *Middleware, uploadsDir string) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Recover)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Uploaded menu item images are served statically.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.With(mw.RequireAuth()).Get("/profile", h.Auth.Profile)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/categories", h.Menu.ListCategories)
			r.Get("/items", h.Menu.ListItems)
			r.Get("/items/{id}", h.Menu.GetItem)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAuth(models.RoleAdmin))
				r.Post("/categories", h.Menu.CreateCategory)
				r.Put("/categories/{id}", h.Menu.UpdateCategory)
				r.Delete("/categories/{id}", h.Menu.DeleteCategory)
				r.Post("/items", h.Menu.CreateItem)
				r.Put("/items/{id}", h.Menu.UpdateItem)
				r.Post("/items/{id}/image", h.Menu.UploadItemImage)
				r.Delete("/items/{id}", h.Menu.DeleteItem)
			})
		})

		r.Route("/tables", func(r chi.Router) {
			r.Get("/by-slug/{slug}", h.Table.GetBySlug)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAuth(models.RoleStaff, models.RoleAdmin))
				r.Get("/", h.Table.List)
				r.Get("/{id}", h.Table.Get)
				r.Get("/{id}/qr", h.Table.GenerateQR)
			})

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAuth(models.RoleAdmin))
				r.Post("/", h.Table.Create)
				r.Put("/{id}", h.Table.Update)
				r.Delete("/{id}", h.Table.Delete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			// Guests may place and look up orders; a session just
			// attaches the customer to them.
			r.With(mw.OptionalAuth).Post("/", h.Order.Create)
			r.With(mw.RequireAuth()).Get("/me", h.Order.MyOrders)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAuth(models.RoleStaff, models.RoleAdmin))
				r.Get("/", h.Order.List)
				r.Get("/stats", h.Stats.Get)
				r.Patch("/{id}/status", h.Order.UpdateStatus)
			})

			r.With(mw.OptionalAuth).Get("/{id}", h.Order.Get)
		})
	})

	return r
}
