// internal/app/features/dref/taberrors.go
package dref

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	"github.com/dalemusser/fieldhub/internal/app/system/gates"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
)

type tabErrorsResponse struct {
	Tabs       map[string]bool `json:"tabs"`
	FormErrors any             `json:"form_errors,omitempty"`
	NextTab    string          `json:"next_tab,omitempty"`
	PrevTab    string          `json:"prev_tab,omitempty"`
}

// ServeTabErrors validates the stored application and reports which tabs
// carry errors, plus the neighbours of the requested tab for the
// application's type.
//
// Route: GET /api/v2/dref/{id}/tab-errors?tab={name}
func (h *Handler) ServeTabErrors(w http.ResponseWriter, r *http.Request) {
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

	// Round-trip through JSON so the stored document is validated the same
	// way a client payload would be.
	raw, err := json.Marshal(app)
	if err != nil {
		h.Err.LogServerError(w, r, err, "encode dref application")
		return
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		h.Err.LogServerError(w, r, err, "decode dref application")
		return
	}

	errs := validateDrefDoc(doc)
	resp := tabErrorsResponse{Tabs: TabErrors(errs, app.TypeOfDref)}
	if !errs.Empty() {
		resp.FormErrors = errs
	}
	if tab := r.URL.Query().Get("tab"); tab != "" {
		resp.NextTab = NextTab(tab, app.TypeOfDref)
		resp.PrevTab = PrevTab(tab, app.TypeOfDref)
	}
	apierrors.WriteJSON(w, http.StatusOK, resp)
}
