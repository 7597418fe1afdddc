// internal/app/features/bulkupload/upload.go
package bulkupload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	"github.com/dalemusser/fieldhub/internal/app/policy/localunitpolicy"
	"github.com/dalemusser/fieldhub/internal/app/system/gates"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
	"github.com/dalemusser/fieldhub/internal/app/system/xlsxutil"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// HandleUpload accepts a spreadsheet and queues an import job. The caller
// needs both a validator permission for the unit type and the
// externally-managed flag on (country, type); when either is missing the
// explanatory message follows the fixed priority order.
//
// Route: POST /api/v2/bulk-upload-local-unit
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireNonGuest(w, r, "guests cannot import local units")
	if !g.OK {
		return
	}

	if err := r.ParseMultipartForm(xlsxutil.MaxUploadSize); err != nil {
		apierrors.BadRequest(w, nil, "invalid multipart form")
		return
	}

	countryID, err := primitive.ObjectIDFromHex(r.FormValue("country"))
	if err != nil {
		apierrors.BadRequest(w, nil, "invalid country id")
		return
	}
	unitType, err := strconv.Atoi(r.FormValue("local_unit_type"))
	if err != nil {
		apierrors.BadRequest(w, nil, "invalid local unit type")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apierrors.BadRequest(w, nil, "file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xlsm" {
		apierrors.BadRequest(w, nil, "file must be .xlsx or .xlsm")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
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
	flagged, err := h.Flags.IsEnabled(ctx, countryID, unitType)
	if err != nil {
		h.Err.LogServerError(w, r, err, "check externally managed flag")
		return
	}

	ok, deny := localunitpolicy.CanBulkUpload(g.User, countryID, country.Region, unitType, flagged)
	if !ok {
		apierrors.Forbidden(w, string(deny))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, xlsxutil.MaxUploadSize+1))
	if err != nil {
		h.Err.LogServerError(w, r, err, "read uploaded file")
		return
	}
	if len(data) > xlsxutil.MaxUploadSize {
		apierrors.BadRequest(w, nil, "file is too large")
		return
	}

	job, err := h.Jobs.Create(ctx, models.BulkUpload{
		CountryID:     countryID,
		LocalUnitType: unitType,
		FileName:      header.Filename,
		FileData:      data,
		TriggeredBy:   g.User.ID,
	})
	if err != nil {
		h.Err.LogServerError(w, r, err, "create bulk upload job")
		return
	}
	apierrors.WriteJSON(w, http.StatusCreated, job)
}
