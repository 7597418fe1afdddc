// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops the background workers and cleanly tears down DB
// connections.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if feedSyncWorker != nil {
		logger.Info("stopping feed sync worker")
		feedSyncWorker.Stop()
	}
	if bulkImportWorker != nil {
		logger.Info("stopping bulk import worker")
		bulkImportWorker.Stop()
	}

	if deps.FieldHubMongoClient != nil {
		logger.Info("disconnecting FieldHub MongoDB client")
		if err := deps.FieldHubMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
