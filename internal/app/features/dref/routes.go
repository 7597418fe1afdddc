// internal/app/features/dref/routes.go
package dref

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/fieldhub/internal/app/system/auth"
)

// Routes mounts all DREF routes under the base path
// (typically "/api/v2/dref" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	r.Get("/{id}", h.ServeGet)
	r.Patch("/{id}", h.HandleUpdate)
	r.Get("/{id}/tab-errors", h.ServeTabErrors)

	return r
}
