package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the API routes. When mediaDir is set, its files are served
// under /media/.
func NewRouter(h *Handler, mediaDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if mediaDir != "" {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)
			r.Get("/auth/me", h.me)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/dashboard/stats", h.stats)
				r.Post("/upload", h.upload)

				r.Get("/{collection}", h.list)
				r.Post("/{collection}", h.create)
				r.Get("/{collection}/{id}", h.get)
				r.Put("/{collection}/{id}", h.update)
				r.Patch("/{collection}/{id}", h.update)
				r.Delete("/{collection}/{id}", h.delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}
