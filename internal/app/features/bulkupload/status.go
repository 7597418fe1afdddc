// internal/app/features/bulkupload/status.go
package bulkupload

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	"github.com/dalemusser/fieldhub/internal/app/system/gates"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
	"github.com/dalemusser/fieldhub/internal/app/system/xlsxutil"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

func (h *Handler) loadJob(w http.ResponseWriter, r *http.Request) (models.BulkUpload, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.BadRequest(w, nil, "invalid job id")
		return models.BulkUpload{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	job, err := h.Jobs.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.NotFound(w, "bulk upload job not found")
		} else {
			h.Err.LogServerError(w, r, err, "load bulk upload job")
		}
		return models.BulkUpload{}, false
	}
	return job, true
}

// ServeStatus returns the job document. Clients poll this every 5 seconds
// while the job is pending and stop on any terminal status.
//
// Route: GET /api/v2/bulk-upload-local-unit/{id}
func (h *Handler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	job, ok := h.loadJob(w, r)
	if !ok {
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, job)
}

// ServeErrorFile downloads the error-detail workbook of a failed job.
//
// Route: GET /api/v2/bulk-upload-local-unit/{id}/error-file
func (h *Handler) ServeErrorFile(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	job, ok := h.loadJob(w, r)
	if !ok {
		return
	}
	if len(job.ErrorFile) == 0 {
		apierrors.NotFound(w, "this job has no error file")
		return
	}
	serveWorkbook(w, "errors-"+job.ID.Hex()+".xlsx", job.ErrorFile)
}

// ServeOriginalFile downloads the workbook the job was created from.
//
// Route: GET /api/v2/bulk-upload-local-unit/{id}/file
func (h *Handler) ServeOriginalFile(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	job, ok := h.loadJob(w, r)
	if !ok {
		return
	}
	if len(job.FileData) == 0 {
		apierrors.NotFound(w, "this job has no stored file")
		return
	}
	serveWorkbook(w, job.FileName, job.FileData)
}

// ServeTemplate downloads a header-only import template for a unit type.
//
// Route: GET /api/v2/bulk-upload-local-unit/template?type={n}
func (h *Handler) ServeTemplate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	unitType, err := strconv.Atoi(r.URL.Query().Get("type"))
	if err != nil {
		apierrors.BadRequest(w, nil, "invalid type")
		return
	}
	data, err := xlsxutil.BuildImportTemplate(unitType)
	if err != nil {
		h.Err.LogServerError(w, r, err, "build import template")
		return
	}
	name := fmt.Sprintf("%s Local Units Import Template.xlsx", models.TypeName(unitType))
	serveWorkbook(w, name, data)
}

func serveWorkbook(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
