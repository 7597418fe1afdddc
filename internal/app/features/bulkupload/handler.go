// internal/app/features/bulkupload/handler.go

// Package bulkupload serves the spreadsheet import surface: job submission,
// poll-friendly status, template and file downloads. Row processing itself
// runs in the background import worker.
package bulkupload

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	bulkuploadstore "github.com/dalemusser/fieldhub/internal/app/store/bulkuploads"
	countrystore "github.com/dalemusser/fieldhub/internal/app/store/countries"
	extmanagedstore "github.com/dalemusser/fieldhub/internal/app/store/extmanaged"
)

// Handler is the feature-level entry point for bulk uploads.
type Handler struct {
	Log       *zap.Logger
	Jobs      *bulkuploadstore.Store
	Countries *countrystore.Store
	Flags     *extmanagedstore.Store
	Err       *apierrors.ErrorLogger
}

// NewHandler constructs a bulk-upload handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:       logger,
		Jobs:      bulkuploadstore.New(db),
		Countries: countrystore.New(db),
		Flags:     extmanagedstore.New(db),
		Err:       apierrors.NewErrorLogger(logger),
	}
}
