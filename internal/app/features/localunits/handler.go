// internal/app/features/localunits/handler.go

// Package localunits serves the local-unit registry: listing, creation,
// edits through the change-request workflow, validator actions, and the
// xlsx export.
package localunits

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	changerequeststore "github.com/dalemusser/fieldhub/internal/app/store/changerequests"
	countrystore "github.com/dalemusser/fieldhub/internal/app/store/countries"
	extmanagedstore "github.com/dalemusser/fieldhub/internal/app/store/extmanaged"
	localunitstore "github.com/dalemusser/fieldhub/internal/app/store/localunits"
)

// Handler is the feature-level entry point for local units.
type Handler struct {
	Log       *zap.Logger
	DB        *mongo.Database
	Units     *localunitstore.Store
	Changes   *changerequeststore.Store
	Countries *countrystore.Store
	Flags     *extmanagedstore.Store
	Err       *apierrors.ErrorLogger
}

// NewHandler constructs a local-units handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:       logger,
		DB:        db,
		Units:     localunitstore.New(db),
		Changes:   changerequeststore.New(db),
		Countries: countrystore.New(db),
		Flags:     extmanagedstore.New(db),
		Err:       apierrors.NewErrorLogger(logger),
	}
}
