// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/matpredict/internal/app/catalog"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles ports, TLS, logging and the like. AppConfig
// carries what is specific to the predictor: where the catalog comes from,
// how visitor sessions are kept and how predictions behave.
type AppConfig struct {
	// Catalog source
	CatalogSource     string // "embedded", "file", "mongo" or "sqlite"
	CatalogFile       string // JSON array of records when CatalogSource is "file"
	CatalogSQLitePath string // database file when CatalogSource is "sqlite"
	CatalogSeed       bool   // seed an empty database from the embedded data

	// MongoDB (only used when CatalogSource is "mongo")
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// Visitor sessions
	SessionKey     string        // cookie signing key; blank generates one per process
	SessionName    string        // cookie name
	SessionDomain  string        // cookie domain (blank means current host)
	SessionIdleTTL time.Duration // idle visitors are dropped after this long

	// Prediction
	PredictDelay      time.Duration // simulated latency before a result
	NoiseSeed         int64         // 0 seeds from the clock
	PredictRateLimit  int           // predictions per client per window; 0 disables
	PredictRateWindow time.Duration
	TrustProxyHeaders bool // key the rate limit on X-Forwarded-For / X-Real-IP

	// Timeouts
	CatalogLoadTimeout time.Duration
	HealthPingTimeout  time.Duration

	// Site chrome
	SiteName   string
	FooterHTML string // sanitized before display
}

// usesMongo reports whether the catalog is read from MongoDB.
func (c AppConfig) usesMongo() bool {
	return c.CatalogSource == catalog.SourceMongo
}

// usesDatabase reports whether the catalog is read from a database that
// catalog_seed can fill.
func (c AppConfig) usesDatabase() bool {
	return c.usesMongo() || c.CatalogSource == catalog.SourceSQLite
}
