// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/matpredict/internal/app/features/errors"
	healthfeature "github.com/dalemusser/matpredict/internal/app/features/health"
	heartbeatfeature "github.com/dalemusser/matpredict/internal/app/features/heartbeat"
	predictorfeature "github.com/dalemusser/matpredict/internal/app/features/predictor"
	"github.com/dalemusser/matpredict/internal/app/interaction"
	"github.com/dalemusser/matpredict/internal/app/noise"
	"github.com/dalemusser/matpredict/internal/app/system/ratelimit"
	"github.com/dalemusser/matpredict/internal/app/system/websession"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, catalog loading and Startup have
// completed. The predictor page and its form actions run behind the visitor
// session and CSRF middleware; the JSON API and health check are read-only
// and sessionless.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := websession.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain,
		int(appCfg.SessionIdleTTL.Seconds()), secure, deps.Sessions, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	runner := interaction.NewRunner(deps.Catalog, noise.NewSeeded(appCfg.NoiseSeed), appCfg.PredictDelay, logger)
	limiter := ratelimit.New(appCfg.PredictRateLimit, appCfg.PredictRateWindow)
	limiter.TrustProxyHeaders = appCfg.TrustProxyHeaders
	predictorHandler := predictorfeature.NewHandler(deps.Catalog, runner, errLog, logger)

	r := chi.NewRouter()

	// Set before mounting so subrouters inherit them.
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	r.Use(csrfProtect(csrfKey(appCfg.SessionKey, logger), secure, logger))

	// Health check endpoint for load balancers and orchestrators
	var sqlPinger healthfeature.Pinger
	if deps.SQL != nil {
		sqlPinger = deps.SQL
	}
	healthHandler := healthfeature.NewHandler(deps.MongoClient, sqlPinger, deps.Catalog, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// JSON API
	r.Mount("/api", predictorfeature.APIRoutes(predictorHandler, limiter))

	// Predictor page and actions
	r.Group(func(r chi.Router) {
		r.Use(sessionMgr.LoadSession)
		r.Mount("/heartbeat", heartbeatfeature.Routes(heartbeatfeature.NewHandler(logger)))
		r.Mount("/", predictorfeature.Routes(predictorHandler, limiter))
	})

	return r, nil
}
