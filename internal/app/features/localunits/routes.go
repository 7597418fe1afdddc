// internal/app/features/localunits/routes.go
package localunits

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/fieldhub/internal/app/system/auth"
)

// Routes mounts all local-unit routes under the base path
// (typically "/api/v2/local-units" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/export", h.ServeExport)

	r.Get("/{id}", h.ServeGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Get("/{id}/latest-change-request", h.ServeLatestChangeRequest)
	r.Post("/{id}/validate", h.HandleValidate)
	r.Post("/{id}/revert", h.HandleRevert)
	r.Post("/{id}/deprecate", h.HandleDeprecate)

	return r
}
