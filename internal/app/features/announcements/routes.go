// internal/app/features/announcements/routes.go
package announcements

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the announcement routes. GET /active is public; every
// other route authenticates the teacher_username request parameter.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/active", h.ListActive)
	r.Get("/all", h.ListAll)
	r.Post("/create", h.Create)
	r.Put("/update/{id}", h.Update)
	r.Delete("/delete/{id}", h.Delete)
	r.Put("/toggle/{id}", h.Toggle)

	return r
}
