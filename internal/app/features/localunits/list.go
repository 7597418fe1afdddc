// internal/app/features/localunits/list.go
package localunits

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	localunitstore "github.com/dalemusser/fieldhub/internal/app/store/localunits"
	"github.com/dalemusser/fieldhub/internal/app/system/gates"
	"github.com/dalemusser/fieldhub/internal/app/system/normalize"
	"github.com/dalemusser/fieldhub/internal/app/system/paging"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// listResponse is one keyset page of local units.
type listResponse struct {
	Results    []models.LocalUnit `json:"results"`
	HasPrev    bool               `json:"has_prev"`
	HasNext    bool               `json:"has_next"`
	PrevCursor string             `json:"prev_cursor,omitempty"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

// ServeList returns a filtered page of local units.
//
// Route: GET /api/v2/local-units
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	f := localunitstore.Filter{
		Search: normalize.QueryParam(query.Get(r, "search")),
	}
	if v := query.Get(r, "country"); v != "" {
		oid, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			apierrors.BadRequest(w, nil, "invalid country id")
			return
		}
		f.CountryID = oid
	}
	if v := query.Get(r, "type"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			apierrors.BadRequest(w, nil, "invalid type")
			return
		}
		f.Type = n
	}
	if v := query.Get(r, "status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			apierrors.BadRequest(w, nil, "invalid status")
			return
		}
		f.Status = models.ValidationStatus(n)
	}
	if v := query.Get(r, "validated"); v != "" {
		b := v == "true" || v == "1"
		f.Validated = &b
	}

	before := query.Get(r, "before")
	after := query.Get(r, "after")
	cfg := paging.ConfigureKeyset(before, after)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Units.List(ctx, f, cfg.KeysetWindow("local_branch_name_ci"), cfg.SortOrder, paging.LimitPlusOne())
	if err != nil {
		h.Err.LogServerError(w, r, err, "list local units")
		return
	}

	page := paging.TrimPage(&rows, before, after)
	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}
	prev, next := paging.BuildCursors(rows,
		func(u models.LocalUnit) string { return u.LocalBranchNameCI },
		func(u models.LocalUnit) primitive.ObjectID { return u.ID },
	)

	apierrors.WriteJSON(w, http.StatusOK, listResponse{
		Results:    rows,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
		PrevCursor: prev,
		NextCursor: next,
	})
}
