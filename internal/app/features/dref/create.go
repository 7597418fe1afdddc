// internal/app/features/dref/create.go
package dref

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	"github.com/dalemusser/fieldhub/internal/app/system/gates"
	"github.com/dalemusser/fieldhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

const maxBodySize = 2 << 20

// decodeDref reads the request body once and decodes it both as a document
// map for schema validation and as a typed application for persistence.
func decodeDref(r *http.Request) (models.DrefApplication, map[string]any, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return models.DrefApplication{}, nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return models.DrefApplication{}, nil, err
	}
	var d models.DrefApplication
	if err := json.Unmarshal(body, &d); err != nil {
		return models.DrefApplication{}, nil, err
	}
	return d, doc, nil
}

// sanitizeNarrative strips markup from the free-text narrative fields.
func sanitizeNarrative(d *models.DrefApplication) {
	d.Title = htmlsanitize.Strip(d.Title)
	d.EventText = htmlsanitize.Strip(d.EventText)
	d.EventDescription = htmlsanitize.Sanitize(d.EventDescription)
	d.EventScope = htmlsanitize.Sanitize(d.EventScope)
	d.MajorCoordination = htmlsanitize.Sanitize(d.MajorCoordination)
	d.OperationObjective = htmlsanitize.Sanitize(d.OperationObjective)
	d.ResponseStrategy = htmlsanitize.Sanitize(d.ResponseStrategy)
	d.RiskSecurityConcern = htmlsanitize.Sanitize(d.RiskSecurityConcern)
}

// HandleCreate creates a DREF application. Derived cost and population
// fields are recomputed from the payload, never accepted from it.
//
// Route: POST /api/v2/dref
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireNonGuest(w, r, "guests cannot create DREF applications")
	if !g.OK {
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

	app.CreatedBy = g.User.ID
	app.ModifiedBy = g.User.ID

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Drefs.Create(ctx, app)
	if err != nil {
		h.Err.LogServerError(w, r, err, "create dref application")
		return
	}
	apierrors.WriteJSON(w, http.StatusCreated, created)
}
