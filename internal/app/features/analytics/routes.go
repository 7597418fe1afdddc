// internal/app/features/analytics/routes.go
package analytics

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/fieldhub/internal/app/system/auth"
)

// Routes mounts the analytics routes under the base path
// (typically "/api/v2/analytics" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeSummary)
	r.Get("/modules", h.ServeModules)

	return r
}
