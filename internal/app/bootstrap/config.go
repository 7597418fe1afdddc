// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for FieldHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, feed_base_url, etc.
//   - Environment variables: FIELDHUB_MONGO_URI, FIELDHUB_FEED_BASE_URL, etc.
//   - Command-line flags: --mongo_uri, --feed_base_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "fieldhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Upstream feed for externally-managed local units
	{Name: "feed_base_url", Default: "", Desc: "Base URL of the upstream export API (blank disables feed sync)"},
	{Name: "feed_api_key", Default: "", Desc: "Token for the upstream export API"},
	{Name: "feed_sync_interval", Default: "15m", Desc: "How often to sweep enabled feed flags (e.g., 15m, 1h)"},
	{Name: "feed_poll_interval", Default: "5s", Desc: "Delay between export-job status polls"},
	{Name: "feed_poll_attempts", Default: 60, Desc: "Export-job status polls before giving up"},

	// Bulk import worker
	{Name: "bulk_import_interval", Default: "5s", Desc: "How often to look for pending bulk upload jobs"},

	// Web-visit analytics
	{Name: "analytics_dataset_path", Default: "", Desc: "Path to the visit-analytics CSV (blank disables analytics)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, FIELDHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "FIELDHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionDomain:    appValues.String("session_domain"),

		// Feed sync
		FeedBaseURL:      appValues.String("feed_base_url"),
		FeedAPIKey:       appValues.String("feed_api_key"),
		FeedSyncInterval: appValues.Duration("feed_sync_interval", 15*time.Minute),
		FeedPollInterval: appValues.Duration("feed_poll_interval", 5*time.Second),
		FeedPollAttempts: appValues.Int("feed_poll_attempts"),

		// Bulk import
		BulkImportInterval: appValues.Duration("bulk_import_interval", 5*time.Second),

		// Analytics
		AnalyticsDatasetPath: appValues.String("analytics_dataset_path"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
//
// FieldHub validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.FeedBaseURL != "" && appCfg.FeedPollAttempts < 1 {
		return fmt.Errorf("feed_poll_attempts must be at least 1 when feed sync is enabled")
	}

	return nil
}
