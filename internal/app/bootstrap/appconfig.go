// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging, CORS, and request limits. AppConfig is where
// everything specific to FieldHub lives: the Mongo connection, session
// settings, and the upstream feed used by the externally-managed sync.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// Upstream feed for externally-managed local units. Feed sync is
	// disabled when FeedBaseURL is blank.
	FeedBaseURL      string        // Base URL of the upstream export API
	FeedAPIKey       string        // Token for the upstream API (blank means unauthenticated)
	FeedSyncInterval time.Duration // How often to sweep enabled (country,type) flags
	FeedPollInterval time.Duration // Delay between export-job status polls
	FeedPollAttempts int           // Poll attempts before giving up on a job

	// Bulk import worker
	BulkImportInterval time.Duration // How often to look for pending upload jobs

	// Web-visit analytics. The summary endpoint is disabled when the
	// dataset path is blank.
	AnalyticsDatasetPath string // Path to the visit-analytics CSV
}
