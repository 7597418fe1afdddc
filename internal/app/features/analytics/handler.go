// internal/app/features/analytics/handler.go

// Package analytics serves permission-scoped summaries of the platform's
// web-visit dataset and the role-gated dashboard module catalog.
package analytics

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	countrystore "github.com/dalemusser/fieldhub/internal/app/store/countries"
	"github.com/dalemusser/fieldhub/internal/app/system/gates"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// Handler is the feature-level entry point for analytics.
type Handler struct {
	Log         *zap.Logger
	Countries   *countrystore.Store
	DatasetPath string
	Err         *apierrors.ErrorLogger
}

// NewHandler constructs an analytics handler. datasetPath points at the
// visit CSV; blank disables the summary endpoint.
func NewHandler(db *mongo.Database, logger *zap.Logger, datasetPath string) *Handler {
	return &Handler{
		Log:         logger,
		Countries:   countrystore.New(db),
		DatasetPath: datasetPath,
		Err:         apierrors.NewErrorLogger(logger),
	}
}

// ServeSummary aggregates the visit dataset down to the caller's scope.
//
// Route: GET /api/v2/analytics
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireNonGuest(w, r, "guests cannot view analytics")
	if !g.OK {
		return
	}
	if h.DatasetPath == "" {
		apierrors.NotFound(w, "analytics is not enabled")
		return
	}

	rows, err := loadDataset(h.DatasetPath)
	if err != nil {
		h.Err.LogServerError(w, r, err, "load analytics dataset")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	regionByCountry, err := h.countryRegions(ctx)
	if err != nil {
		h.Err.LogServerError(w, r, err, "load country regions")
		return
	}

	access := AccessFor(g.User)
	apierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"scope":   access,
		"summary": summarize(rows, regionByCountry, access),
	})
}

// ServeModules returns the caller's inferred role profile and the
// dashboard modules it may open.
//
// Route: GET /api/v2/analytics/modules
func (h *Handler) ServeModules(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireNonGuest(w, r, "guests cannot view analytics")
	if !g.OK {
		return
	}

	profile := InferRoleProfile(AccessFor(g.User))
	apierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"profile": profile,
		"modules": AvailableModules(profile.Role),
	})
}

// countryRegions maps folded country names onto region slugs.
func (h *Handler) countryRegions(ctx context.Context) (map[string]string, error) {
	countries, err := h.Countries.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(countries))
	for _, c := range countries {
		if slug := models.RegionSlug(c.Region); slug != "" && c.NameCI != "" {
			m[c.NameCI] = slug
		}
	}
	return m, nil
}
