// internal/app/features/localunits/export.go
package localunits

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	localunitstore "github.com/dalemusser/fieldhub/internal/app/store/localunits"
	"github.com/dalemusser/fieldhub/internal/app/system/gates"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
	"github.com/dalemusser/fieldhub/internal/app/system/xlsxutil"
)

// ServeExport streams the registry for one country and unit type as an
// xlsx download.
//
// Route: GET /api/v2/local-units/export?country={id}&type={n}
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	countryID, err := primitive.ObjectIDFromHex(query.Get(r, "country"))
	if err != nil {
		apierrors.BadRequest(w, nil, "invalid country id")
		return
	}
	unitType, err := strconv.Atoi(query.Get(r, "type"))
	if err != nil {
		apierrors.BadRequest(w, nil, "invalid type")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	country, err := h.Countries.GetByID(ctx, countryID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.NotFound(w, "country not found")
		} else {
			h.Err.LogServerError(w, r, err, "load country")
		}
		return
	}

	units, err := h.Units.ListAll(ctx, localunitstore.Filter{
		CountryID: countryID,
		Type:      unitType,
	})
	if err != nil {
		h.Err.LogServerError(w, r, err, "list local units for export")
		return
	}

	data, err := xlsxutil.BuildLocalUnitsWorkbook(units, unitType)
	if err != nil {
		h.Err.LogServerError(w, r, err, "build export workbook")
		return
	}

	name := xlsxutil.ExportFileName(country.Name, unitType, time.Now().UTC())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.Log.Warn("write export response failed")
	}
}
