// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/dalemusser/fieldhub/internal/app/system/feedclient"
	"github.com/dalemusser/fieldhub/internal/app/system/workers"
)

// Background workers started here and stopped in Shutdown.
var (
	bulkImportWorker *workers.BulkImport
	feedSyncWorker   *workers.FeedSync
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. FieldHub
// starts its background workers here: the bulk import processor always, the
// feed sync only when an upstream feed is configured.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	bulkImportWorker = workers.NewBulkImport(deps.FieldHubMongoDatabase, logger, appCfg.BulkImportInterval)
	bulkImportWorker.Start()

	if appCfg.FeedBaseURL != "" {
		client := feedclient.New(appCfg.FeedBaseURL, appCfg.FeedAPIKey, logger)
		feedSyncWorker = workers.NewFeedSync(
			deps.FieldHubMongoDatabase,
			client,
			logger,
			appCfg.FeedSyncInterval,
			appCfg.FeedPollInterval,
			appCfg.FeedPollAttempts,
		)
		feedSyncWorker.Start()
	} else {
		logger.Info("feed sync disabled: no feed_base_url configured")
	}

	return nil
}
