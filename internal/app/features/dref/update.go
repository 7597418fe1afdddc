// internal/app/features/dref/update.go
package dref

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	drefstore "github.com/dalemusser/fieldhub/internal/app/store/drefs"
	"github.com/dalemusser/fieldhub/internal/app/system/gates"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
)

// HandleUpdate replaces an application. The payload's modified_at must match
// the stored document; a stale value is rejected with the OBSOLETE_PAYLOAD
// field error so the client can refetch and confirm. A confirmed overwrite
// resubmits with ?force=true.
//
// Route: PATCH /api/v2/dref/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireNonGuest(w, r, "guests cannot edit DREF applications")
	if !g.OK {
		return
	}
	id, ok := drefID(w, r)
	if !ok {
		return
	}

	app, doc, err := decodeDref(r)
	if err != nil {
		apierrors.BadRequest(w, nil, "invalid request body")
		return
	}
	if errs := validateDrefDoc(doc); !errs.Empty() {
		apierrors.BadRequest(w, errs, "")
		return
	}
	applyForced(&app)
	sanitizeNarrative(&app)
	recomputeDerived(&app)

	app.ID = id
	app.ModifiedBy = g.User.ID

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var updated = app
	if r.URL.Query().Get("force") == "true" {
		updated, err = h.Drefs.Overwrite(ctx, app)
	} else {
		updated, err = h.Drefs.UpdateIfUnmodified(ctx, app, app.ModifiedAt)
	}
	if err != nil {
		switch {
		case errors.Is(err, drefstore.ErrStaleWrite):
			apierrors.Conflict(w)
		case errors.Is(err, mongo.ErrNoDocuments):
			apierrors.NotFound(w, "application not found")
		default:
			h.Err.LogServerError(w, r, err, "update dref application")
		}
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, updated)
}
