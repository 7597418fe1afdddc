// internal/app/features/localunits/deprecate.go
package localunits

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	"github.com/dalemusser/fieldhub/internal/app/policy/localunitpolicy"
	"github.com/dalemusser/fieldhub/internal/app/system/formschema"
	"github.com/dalemusser/fieldhub/internal/app/system/gates"
	"github.com/dalemusser/fieldhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/fieldhub/internal/app/system/normalize"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

type deprecateRequest struct {
	Reason      int    `json:"deprecate_reason"`
	Explanation string `json:"deprecate_explanation"`
}

func validDeprecateReason(code int) bool {
	switch code {
	case models.DeprecateNonExistent, models.DeprecateIncorrectData,
		models.DeprecateTemporary, models.DeprecateOther:
		return true
	}
	return false
}

// HandleDeprecate soft-deletes a unit with a reason code and a free-text
// explanation. Open change requests are discarded with it.
//
// Route: POST /api/v2/local-units/{id}/deprecate
func (h *Handler) HandleDeprecate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireNonGuest(w, r, "guests cannot deprecate local units")
	if !g.OK {
		return
	}
	id, ok := unitID(w, r)
	if !ok {
		return
	}

	var req deprecateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, nil, "invalid request body")
		return
	}

	errs := formschema.ErrorTree{}
	if !validDeprecateReason(req.Reason) {
		errs.Add("deprecate_reason", "invalid deprecation reason")
	}
	explanation := normalize.Reason(htmlsanitize.Strip(req.Explanation))
	if explanation == "" {
		errs.Add("deprecate_explanation", "This field is required.")
	}
	if !errs.Empty() {
		apierrors.BadRequest(w, errs, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	unit, ok := h.loadUnit(w, r, ctx, id)
	if !ok {
		return
	}
	if !localunitpolicy.CanDelete(g.User, &unit, unit.RegionID) {
		apierrors.Forbidden(w, "you do not have permission to deprecate this local unit")
		return
	}

	if err := h.Units.Deprecate(ctx, id, req.Reason, explanation, g.User.ID); err != nil {
		h.Err.LogServerError(w, r, err, "deprecate local unit")
		return
	}
	if _, err := h.Changes.DeleteForUnit(ctx, id); err != nil {
		h.Err.LogServerError(w, r, err, "delete change requests for deprecated unit")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
