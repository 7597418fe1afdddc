// internal/app/features/localunits/create.go
package localunits

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	localunitstore "github.com/dalemusser/fieldhub/internal/app/store/localunits"
	"github.com/dalemusser/fieldhub/internal/app/system/formschema"
	"github.com/dalemusser/fieldhub/internal/app/system/gates"
	"github.com/dalemusser/fieldhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

const maxBodySize = 1 << 20

// decodeUnit reads the request body once and decodes it both as a document
// map for schema validation and as a typed unit for persistence.
func decodeUnit(r *http.Request) (models.LocalUnit, map[string]any, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return models.LocalUnit{}, nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return models.LocalUnit{}, nil, err
	}
	var u models.LocalUnit
	if err := json.Unmarshal(body, &u); err != nil {
		return models.LocalUnit{}, nil, err
	}
	return u, doc, nil
}

// HandleCreate creates a local unit. New units start UNVALIDATED unless the
// (country, type) pair is flagged externally managed, in which case the
// record belongs to the feed from birth.
//
// Route: POST /api/v2/local-units
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireNonGuest(w, r, "guests cannot create local units")
	if !g.OK {
		return
	}

	unit, doc, err := decodeUnit(r)
	if err != nil {
		apierrors.BadRequest(w, nil, "invalid request body")
		return
	}
	if errs := validateUnitDoc(doc); !errs.Empty() {
		apierrors.BadRequest(w, errs, "")
		return
	}
	applyForced(&unit)
	unit.UpdateReason = htmlsanitize.Strip(unit.UpdateReason)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	country, err := h.Countries.GetByID(ctx, unit.CountryID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			errs := formschema.ErrorTree{}
			errs.Add("country_id", "unknown country")
			apierrors.BadRequest(w, errs, "")
		} else {
			h.Err.LogServerError(w, r, err, "load country")
		}
		return
	}
	unit.RegionID = country.Region

	unit.Status = models.StatusUnvalidated
	flagged, err := h.Flags.IsEnabled(ctx, unit.CountryID, unit.Type)
	if err != nil {
		h.Err.LogServerError(w, r, err, "check externally managed flag")
		return
	}
	if flagged {
		unit.Status = models.StatusExternallyManaged
	}

	unit.CreatedBy = g.User.ID
	unit.ModifiedBy = g.User.ID

	created, err := h.Units.Create(ctx, unit)
	if err != nil {
		if errors.Is(err, localunitstore.ErrDuplicateLocalUnit) {
			errs := formschema.ErrorTree{}
			errs.Add("local_branch_name", err.Error())
			apierrors.BadRequest(w, errs, "")
			return
		}
		h.Err.LogServerError(w, r, err, "create local unit")
		return
	}
	apierrors.WriteJSON(w, http.StatusCreated, created)
}
