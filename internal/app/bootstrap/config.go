// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/dalemusser/matpredict/internal/app/catalog"
	"github.com/dalemusser/matpredict/internal/app/interaction"
	materialstore "github.com/dalemusser/matpredict/internal/app/store/materials"
	"github.com/dalemusser/matpredict/internal/app/store/materialsql"
	"github.com/dalemusser/matpredict/internal/app/system/websession"
	"github.com/dalemusser/matpredict/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the predictor.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: catalog_source, session_name, etc.
//   - Environment variables: MATPREDICT_CATALOG_SOURCE, MATPREDICT_SESSION_NAME, etc.
//   - Command-line flags: --catalog_source, --session_name, etc.
var appConfigKeys = []config.AppKey{
	// Catalog
	{Name: "catalog_source", Default: catalog.SourceEmbedded, Desc: "Catalog source: 'embedded', 'file', 'mongo' or 'sqlite'"},
	{Name: "catalog_file", Default: "", Desc: "Path to a JSON catalog (catalog_source=file)"},
	{Name: "catalog_sqlite_path", Default: materialsql.DefaultDBFile, Desc: "SQLite database file (catalog_source=sqlite)"},
	{Name: "catalog_seed", Default: false, Desc: "Seed an empty catalog database from the bundled catalog"},
	{Name: "catalog_load_timeout", Default: "15s", Desc: "Timeout for loading or seeding the catalog"},

	// MongoDB
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "matpredict", Desc: "MongoDB database name"},
	{Name: "mongo_collection", Default: materialstore.DefaultCollection, Desc: "MongoDB collection holding the catalog"},
	{Name: "health_ping_timeout", Default: "2s", Desc: "Timeout for the health check database ping"},

	// Sessions
	{Name: "session_key", Default: "", Desc: "Session signing key (blank generates a per-process key)"},
	{Name: "session_name", Default: websession.DefaultCookieName, Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_idle_ttl", Default: "30m", Desc: "Drop visitor state idle longer than this"},

	// Prediction
	{Name: "predict_delay", Default: "500ms", Desc: "Simulated prediction latency"},
	{Name: "noise_seed", Default: 0, Desc: "Seed for prediction noise (0 seeds from the clock)"},
	{Name: "predict_rate_limit", Default: 60, Desc: "Predictions per client per window (0 disables)"},
	{Name: "predict_rate_window", Default: "1m", Desc: "Window for predict_rate_limit"},
	{Name: "trust_proxy_headers", Default: false, Desc: "Identify clients by X-Forwarded-For / X-Real-IP (only behind a trusted proxy)"},

	// Site
	{Name: "site_name", Default: models.DefaultSiteName, Desc: "Site name shown in the header"},
	{Name: "footer_html", Default: "", Desc: "Footer HTML (sanitized)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig reads .env files, config files,
// MATPREDICT_* environment variables and flags, merged with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MATPREDICT", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		CatalogSource:     appValues.String("catalog_source"),
		CatalogFile:       appValues.String("catalog_file"),
		CatalogSQLitePath: appValues.String("catalog_sqlite_path"),
		CatalogSeed:       appValues.Bool("catalog_seed"),

		MongoURI:        appValues.String("mongo_uri"),
		MongoDatabase:   appValues.String("mongo_database"),
		MongoCollection: appValues.String("mongo_collection"),

		SessionKey:     appValues.String("session_key"),
		SessionName:    appValues.String("session_name"),
		SessionDomain:  appValues.String("session_domain"),
		SessionIdleTTL: appValues.Duration("session_idle_ttl", 30*time.Minute),

		PredictDelay:      appValues.Duration("predict_delay", interaction.DefaultDelay),
		NoiseSeed:         int64(appValues.Int("noise_seed")),
		PredictRateLimit:  appValues.Int("predict_rate_limit"),
		PredictRateWindow: appValues.Duration("predict_rate_window", time.Minute),
		TrustProxyHeaders: appValues.Bool("trust_proxy_headers"),

		CatalogLoadTimeout: appValues.Duration("catalog_load_timeout", 15*time.Second),
		HealthPingTimeout:  appValues.Duration("health_ping_timeout", 2*time.Second),

		SiteName:   appValues.String("site_name"),
		FooterHTML: appValues.String("footer_html"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// It checks the catalog source and whatever that source needs, before any
// connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if !catalog.IsValidSource(appCfg.CatalogSource) {
		return fmt.Errorf("invalid catalog_source %q: want %q, %q, %q or %q",
			appCfg.CatalogSource, catalog.SourceEmbedded, catalog.SourceFile, catalog.SourceMongo, catalog.SourceSQLite)
	}

	switch appCfg.CatalogSource {
	case catalog.SourceFile:
		if appCfg.CatalogFile == "" {
			return fmt.Errorf("catalog_source=file requires catalog_file")
		}
		if _, err := os.Stat(appCfg.CatalogFile); err != nil {
			return fmt.Errorf("catalog_file: %w", err)
		}
	case catalog.SourceMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" || appCfg.MongoCollection == "" {
			return fmt.Errorf("catalog_source=mongo requires mongo_database and mongo_collection")
		}
	case catalog.SourceSQLite:
		if appCfg.CatalogSQLitePath == "" {
			return fmt.Errorf("catalog_source=sqlite requires catalog_sqlite_path")
		}
	}
	if appCfg.CatalogSeed && !appCfg.usesDatabase() {
		logger.Warn("catalog_seed ignored: catalog_source is not a database",
			zap.String("catalog_source", appCfg.CatalogSource))
	}

	durations := []struct {
		name string
		d    time.Duration
	}{
		{"session_idle_ttl", appCfg.SessionIdleTTL},
		{"predict_delay", appCfg.PredictDelay},
		{"predict_rate_window", appCfg.PredictRateWindow},
		{"catalog_load_timeout", appCfg.CatalogLoadTimeout},
		{"health_ping_timeout", appCfg.HealthPingTimeout},
	}
	for _, d := range durations {
		if d.d < 0 {
			return fmt.Errorf("%s must not be negative (got %v)", d.name, d.d)
		}
	}
	if appCfg.PredictRateLimit < 0 {
		return fmt.Errorf("predict_rate_limit must not be negative (got %d)", appCfg.PredictRateLimit)
	}
	if appCfg.PredictRateLimit > 0 && appCfg.PredictRateWindow == 0 {
		return fmt.Errorf("predict_rate_window must be set when predict_rate_limit is enabled")
	}

	if coreCfg != nil && coreCfg.Env == "prod" && appCfg.SessionKey == "" {
		logger.Warn("session_key is blank; sessions will not survive a restart")
	}
	return nil
}
