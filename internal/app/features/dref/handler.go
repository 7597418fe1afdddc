// internal/app/features/dref/handler.go

// Package dref serves Disaster Relief Emergency Fund applications: a large
// aggregate document edited across five logical tabs, with derived totals
// recomputed on every write and a modified_at conflict protocol.
package dref

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	drefstore "github.com/dalemusser/fieldhub/internal/app/store/drefs"
)

// Handler is the feature-level entry point for DREF applications.
type Handler struct {
	Log   *zap.Logger
	Drefs *drefstore.Store
	Err   *apierrors.ErrorLogger
}

// NewHandler constructs a DREF handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:   logger,
		Drefs: drefstore.New(db),
		Err:   apierrors.NewErrorLogger(logger),
	}
}
