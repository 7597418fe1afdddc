// internal/app/features/localunits/update.go
package localunits

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	"github.com/dalemusser/fieldhub/internal/app/policy/localunitpolicy"
	localunitstore "github.com/dalemusser/fieldhub/internal/app/store/localunits"
	"github.com/dalemusser/fieldhub/internal/app/system/diffkit"
	"github.com/dalemusser/fieldhub/internal/app/system/formschema"
	"github.com/dalemusser/fieldhub/internal/app/system/gates"
	"github.com/dalemusser/fieldhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
	"github.com/dalemusser/fieldhub/internal/app/system/txn"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// unitChanged compares two unit records with lifecycle metadata blanked
// out, so only submitted data decides whether an edit is a real change.
func unitChanged(old, proposed *models.LocalUnit) bool {
	a, b := *old, *proposed
	for _, u := range []*models.LocalUnit{&a, &b} {
		u.Status = 0
		u.UpdateReason = ""
		u.LocalBranchNameCI = ""
		u.EnglishBranchNameCI = ""
		u.CreatedAt, u.ModifiedAt = time.Time{}, time.Time{}
		u.CreatedBy, u.ModifiedBy = primitive.NilObjectID, primitive.NilObjectID
	}
	return diffkit.HasDifferences(a, b)
}

// HandleUpdate applies an edit submission. Edits to a VALIDATED unit do not
// overwrite the record directly: the previous state is snapshotted into a
// pending change request and the unit moves to PENDING_VALIDATION until a
// validator accepts or reverts it. Drafts and already-pending units are
// written in place, as are edits by actors whose scope bypasses review.
//
// Route: PUT /api/v2/local-units/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireNonGuest(w, r, "guests cannot edit local units")
	if !g.OK {
		return
	}
	id, ok := unitID(w, r)
	if !ok {
		return
	}

	proposed, doc, err := decodeUnit(r)
	if err != nil {
		apierrors.BadRequest(w, nil, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	existing, ok := h.loadUnit(w, r, ctx, id)
	if !ok {
		return
	}
	if !localunitpolicy.CanEdit(g.User, &existing) {
		apierrors.Forbidden(w, "you do not have permission to edit this local unit")
		return
	}

	if errs := validateUnitDoc(doc); !errs.Empty() {
		apierrors.BadRequest(w, errs, "")
		return
	}
	applyForced(&proposed)
	proposed.UpdateReason = htmlsanitize.Strip(proposed.UpdateReason)

	// Identity and placement are immutable through this endpoint.
	proposed.ID = existing.ID
	proposed.CountryID = existing.CountryID
	proposed.RegionID = existing.RegionID
	proposed.Type = existing.Type
	proposed.ModifiedBy = g.User.ID

	needsReview := existing.Status == models.StatusValidated &&
		!localunitpolicy.EditBypassesReview(g.User, &existing, existing.RegionID)

	// An edit that changes nothing does not enter review; the record is
	// returned as-is.
	if needsReview && !unitChanged(&existing, &proposed) {
		apierrors.WriteJSON(w, http.StatusOK, existing)
		return
	}

	if needsReview {
		proposed.Status = models.StatusPendingValidation
	} else {
		proposed.Status = existing.Status
	}

	// The change request and the unit write must land together; a request
	// without the matching PENDING_VALIDATION write would get approved for
	// a change that never applied.
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if !needsReview {
			return h.Units.Replace(ctx, proposed)
		}
		cr, err := h.Changes.Create(ctx, models.ChangeRequest{
			LocalUnitID:    existing.ID,
			PreviousData:   existing,
			PreviousStatus: existing.Status,
			CreatedBy:      g.User.ID,
		})
		if err != nil {
			return err
		}
		if err := h.Units.Replace(ctx, proposed); err != nil {
			// Without a transaction the insert is already visible.
			if derr := h.Changes.Delete(ctx, cr.ID); derr != nil {
				h.Log.Error("orphan change request left open",
					zap.String("change_request_id", cr.ID.Hex()),
					zap.Error(derr))
			}
			return err
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, localunitstore.ErrExternallyManaged):
			apierrors.Forbidden(w, "externally managed local units cannot be edited")
		case errors.Is(err, localunitstore.ErrDuplicateLocalUnit):
			errs := formschema.ErrorTree{}
			errs.Add("local_branch_name", err.Error())
			apierrors.BadRequest(w, errs, "")
		default:
			h.Err.LogServerError(w, r, err, "update local unit")
		}
		return
	}

	updated, ok := h.loadUnit(w, r, ctx, id)
	if !ok {
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, updated)
}
