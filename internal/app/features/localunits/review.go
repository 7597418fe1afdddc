// internal/app/features/localunits/review.go
package localunits

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	"github.com/dalemusser/fieldhub/internal/app/policy/localunitpolicy"
	changerequeststore "github.com/dalemusser/fieldhub/internal/app/store/changerequests"
	"github.com/dalemusser/fieldhub/internal/app/system/diffkit"
	"github.com/dalemusser/fieldhub/internal/app/system/formschema"
	"github.com/dalemusser/fieldhub/internal/app/system/gates"
	"github.com/dalemusser/fieldhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/fieldhub/internal/app/system/normalize"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
	"github.com/dalemusser/fieldhub/internal/app/system/txn"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// changeRequestResponse is a change request plus a keyed diff of the
// health profile list between the snapshot and the current record, so the
// review screen can mark added/removed/changed entries without positional
// guessing.
type changeRequestResponse struct {
	models.ChangeRequest
	ProfileChanges []diffkit.KeyedChange `json:"profile_changes,omitempty"`
}

// profilesGeneric converts a profile list into the generic form the diff
// helpers operate on.
func profilesGeneric(profiles []models.OtherProfile) []map[string]any {
	out := make([]map[string]any, 0, len(profiles))
	for _, p := range profiles {
		v, err := diffkit.ToValue(p)
		if err != nil {
			continue
		}
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// ServeLatestChangeRequest returns the most recent change request for a
// unit. The review screen diffs its previous snapshot against the current
// record.
//
// Route: GET /api/v2/local-units/{id}/latest-change-request
func (h *Handler) ServeLatestChangeRequest(w http.ResponseWriter, r *http.Request) {
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

	cr, err := h.Changes.LatestForUnit(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.NotFound(w, "no change request for this local unit")
		} else {
			h.Err.LogServerError(w, r, err, "load latest change request")
		}
		return
	}

	resp := changeRequestResponse{ChangeRequest: cr}
	if current, err := h.Units.GetByID(ctx, id); err == nil &&
		current.Health != nil && cr.PreviousData.Health != nil {
		resp.ProfileChanges = diffkit.DiffKeyedList(
			profilesGeneric(cr.PreviousData.Health.OtherProfiles),
			profilesGeneric(current.Health.OtherProfiles),
			"client_id")
	}
	apierrors.WriteJSON(w, http.StatusOK, resp)
}

// HandleValidate accepts the pending change: the open change request is
// closed as approved and the unit becomes VALIDATED. The request carries
// no body.
//
// Route: POST /api/v2/local-units/{id}/validate
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireNonGuest(w, r, "guests cannot validate local units")
	if !g.OK {
		return
	}
	id, ok := unitID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	unit, ok := h.loadUnit(w, r, ctx, id)
	if !ok {
		return
	}
	if !localunitpolicy.CanValidate(g.User, &unit, unit.RegionID) {
		apierrors.Forbidden(w, "you do not have permission to validate this local unit")
		return
	}

	// A unit can be validated straight from UNVALIDATED; a pending change
	// request exists only when the edit went through review.
	cr, err := h.Changes.PendingForUnit(ctx, id)
	if err != nil && !errors.Is(err, changerequeststore.ErrNoPendingChange) {
		h.Err.LogServerError(w, r, err, "load pending change request")
		return
	}
	hasPending := err == nil

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if hasPending {
			if err := h.Changes.Resolve(ctx, cr.ID, models.ChangeApproved, "", g.User.ID); err != nil {
				return err
			}
		}
		if err := h.Units.SetStatus(ctx, id, models.StatusValidated, g.User.ID); err != nil {
			if hasPending {
				if rerr := h.Changes.Reopen(ctx, cr.ID); rerr != nil {
					h.Log.Error("change request left approved without status write",
						zap.String("change_request_id", cr.ID.Hex()),
						zap.Error(rerr))
				}
			}
			return err
		}
		return nil
	})
	if err != nil {
		h.Err.LogServerError(w, r, err, "validate local unit")
		return
	}

	updated, ok := h.loadUnit(w, r, ctx, id)
	if !ok {
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, updated)
}

type revertRequest struct {
	Reason string `json:"reason"`
}

// HandleRevert rejects the pending change: the previous snapshot is
// restored, the unit returns to its prior status, and the change request
// closes as rejected with the given reason.
//
// Route: POST /api/v2/local-units/{id}/revert
func (h *Handler) HandleRevert(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireNonGuest(w, r, "guests cannot revert local units")
	if !g.OK {
		return
	}
	id, ok := unitID(w, r)
	if !ok {
		return
	}

	var req revertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, nil, "invalid request body")
		return
	}
	reason := normalize.Reason(htmlsanitize.Strip(req.Reason))
	if reason == "" {
		errs := formschema.ErrorTree{}
		errs.Add("reason", "This field is required.")
		apierrors.BadRequest(w, errs, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	unit, ok := h.loadUnit(w, r, ctx, id)
	if !ok {
		return
	}
	if !localunitpolicy.CanValidate(g.User, &unit, unit.RegionID) {
		apierrors.Forbidden(w, "you do not have permission to revert this local unit")
		return
	}

	cr, err := h.Changes.PendingForUnit(ctx, id)
	if err != nil {
		if errors.Is(err, changerequeststore.ErrNoPendingChange) {
			apierrors.BadRequest(w, nil, "no pending change to revert")
		} else {
			h.Err.LogServerError(w, r, err, "load pending change request")
		}
		return
	}

	restored := cr.PreviousData
	restored.Status = cr.PreviousStatus
	restored.ModifiedBy = g.User.ID

	// Rejection and restore must land together: a rejected request with
	// the proposed data still in place looks reviewed but is not.
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if err := h.Changes.Resolve(ctx, cr.ID, models.ChangeRejected, reason, g.User.ID); err != nil {
			return err
		}
		if err := h.Units.Replace(ctx, restored); err != nil {
			// Without a transaction the rejection is already visible;
			// put the request back so the revert can be retried.
			if rerr := h.Changes.Reopen(ctx, cr.ID); rerr != nil {
				h.Log.Error("change request left rejected without restore",
					zap.String("change_request_id", cr.ID.Hex()),
					zap.Error(rerr))
			}
			return err
		}
		return nil
	})
	if err != nil {
		h.Err.LogServerError(w, r, err, "revert local unit")
		return
	}

	updated, ok := h.loadUnit(w, r, ctx, id)
	if !ok {
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, updated)
}
