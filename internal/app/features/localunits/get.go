// internal/app/features/localunits/get.go
package localunits

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	"github.com/dalemusser/fieldhub/internal/app/system/gates"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// unitID parses the {id} URL parameter.
func unitID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.BadRequest(w, nil, "invalid local unit id")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// loadUnit fetches the unit or writes the 404/500 response.
func (h *Handler) loadUnit(w http.ResponseWriter, r *http.Request, ctx context.Context, id primitive.ObjectID) (models.LocalUnit, bool) {
	unit, err := h.Units.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.NotFound(w, "local unit not found")
		} else {
			h.Err.LogServerError(w, r, err, "load local unit")
		}
		return models.LocalUnit{}, false
	}
	return unit, true
}

// ServeGet returns a single local unit.
//
// Route: GET /api/v2/local-units/{id}
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	id, ok := unitID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	unit, ok := h.loadUnit(w, r, ctx, id)
	if !ok {
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, unit)
}
