// internal/app/features/options/routes.go
package options

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter serving the enum catalogs. The catalogs are
// public; no auth middleware.
func Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/local-units-options", ServeLocalUnitOptions)
	r.Get("/global-enums", ServeGlobalEnums)
	return r
}
