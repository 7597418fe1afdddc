// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	analyticsfeature "github.com/dalemusser/fieldhub/internal/app/features/analytics"
	bulkuploadfeature "github.com/dalemusser/fieldhub/internal/app/features/bulkupload"
	dreffeature "github.com/dalemusser/fieldhub/internal/app/features/dref"
	healthfeature "github.com/dalemusser/fieldhub/internal/app/features/health"
	localunitsfeature "github.com/dalemusser/fieldhub/internal/app/features/localunits"
	optionsfeature "github.com/dalemusser/fieldhub/internal/app/features/options"
	userstore "github.com/dalemusser/fieldhub/internal/app/store/users"
	"github.com/dalemusser/fieldhub/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// FieldHub initializes the session store, applies the session-user loading
// middleware, and mounts the JSON API: local units, bulk upload, DREF
// applications, visit analytics, enum catalogs, and the health check.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: loads the signed-in user into context so
	// handlers read it via auth.CurrentUser(r). Users are fetched fresh on
	// each request so role changes take effect immediately.
	users := userstore.New(deps.FieldHubMongoDatabase)
	r.Use(auth.LoadSessionUser(users, logger))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.FieldHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api/v2", func(api chi.Router) {
		unitsHandler := localunitsfeature.NewHandler(deps.FieldHubMongoDatabase, logger)
		api.Mount("/local-units", localunitsfeature.Routes(unitsHandler))

		bulkHandler := bulkuploadfeature.NewHandler(deps.FieldHubMongoDatabase, logger)
		api.Mount("/bulk-upload-local-unit", bulkuploadfeature.Routes(bulkHandler))

		drefHandler := dreffeature.NewHandler(deps.FieldHubMongoDatabase, logger)
		api.Mount("/dref", dreffeature.Routes(drefHandler))

		analyticsHandler := analyticsfeature.NewHandler(deps.FieldHubMongoDatabase, logger, appCfg.AnalyticsDatasetPath)
		api.Mount("/analytics", analyticsfeature.Routes(analyticsHandler))

		// Enum catalogs (local-units-options, global-enums)
		api.Mount("/", optionsfeature.Routes())
	})

	return r, nil
}
