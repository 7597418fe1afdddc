// internal/app/features/bulkupload/routes.go
package bulkupload

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/fieldhub/internal/app/system/auth"
)

// Routes mounts all bulk-upload routes under the base path
// (typically "/api/v2/bulk-upload-local-unit" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/", h.HandleUpload)
	r.Get("/template", h.ServeTemplate)
	r.Get("/{id}", h.ServeStatus)
	r.Get("/{id}/error-file", h.ServeErrorFile)
	r.Get("/{id}/file", h.ServeOriginalFile)

	return r
}
