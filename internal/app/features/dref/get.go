// internal/app/features/dref/get.go
package dref

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	"github.com/dalemusser/fieldhub/internal/app/system/gates"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// drefID parses the {id} URL parameter.
func drefID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.BadRequest(w, nil, "invalid application id")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// loadDref fetches the application or writes the 404/500 response.
func (h *Handler) loadDref(w http.ResponseWriter, r *http.Request, ctx context.Context, id primitive.ObjectID) (models.DrefApplication, bool) {
	app, err := h.Drefs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.NotFound(w, "application not found")
		} else {
			h.Err.LogServerError(w, r, err, "load dref application")
		}
		return models.DrefApplication{}, false
	}
	return app, true
}

// ServeGet returns one application.
//
// Route: GET /api/v2/dref/{id}
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	id, ok := drefID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	app, ok := h.loadDref(w, r, ctx, id)
	if !ok {
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, app)
}

// ServeList returns applications for a country, newest first.
//
// Route: GET /api/v2/dref?country={id}&limit={n}
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	countryID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("country"))
	if err != nil {
		apierrors.BadRequest(w, nil, "invalid country id")
		return
	}
	limit := int64(50)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 || n > 200 {
			apierrors.BadRequest(w, nil, "invalid limit")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	apps, err := h.Drefs.ListByCountry(ctx, countryID, limit)
	if err != nil {
		h.Err.LogServerError(w, r, err, "list dref applications")
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]any{"results": apps})
}
