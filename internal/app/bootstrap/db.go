// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/matpredict/internal/app/catalog"
	materialstore "github.com/dalemusser/matpredict/internal/app/store/materials"
	"github.com/dalemusser/matpredict/internal/app/store/materialsql"
	sessionstore "github.com/dalemusser/matpredict/internal/app/store/sessions"
	"github.com/dalemusser/matpredict/internal/app/system/timeouts"
	"github.com/dalemusser/matpredict/internal/app/system/workers"
	"github.com/dalemusser/matpredict/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// sweepInterval is how often idle visitor state is checked.
const sweepInterval = time.Minute

// catalogDB is a database-backed catalog: MongoDB or SQLite.
type catalogDB interface {
	List(ctx context.Context) ([]models.MaterialRecord, error)
	SeedIfEmpty(ctx context.Context, records []models.MaterialRecord) (int, error)
}

// ConnectDB opens the catalog database when there is one, loads the catalog
// from its configured source and creates the visitor session store.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	timeouts.Configure(timeouts.Config{
		Ping: appCfg.HealthPingTimeout,
		Load: appCfg.CatalogLoadTimeout,
		Seed: appCfg.CatalogLoadTimeout,
	})

	var deps DBDeps
	switch appCfg.CatalogSource {
	case catalog.SourceMongo:
		client, err := connectMongo(ctx, appCfg.MongoURI, logger)
		if err != nil {
			return DBDeps{}, err
		}
		deps.MongoClient = client
		deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
	case catalog.SourceSQLite:
		sqlc, err := materialsql.Open(appCfg.CatalogSQLitePath)
		if err != nil {
			return DBDeps{}, fmt.Errorf("open catalog database: %w", err)
		}
		logger.Info("opened SQLite catalog", zap.String("path", appCfg.CatalogSQLitePath))
		deps.SQL = sqlc
	}

	cat, err := loadCatalog(ctx, appCfg, deps, logger)
	if err != nil {
		closeDatabases(deps)
		return DBDeps{}, err
	}
	logger.Info("catalog loaded",
		zap.String("source", appCfg.CatalogSource),
		zap.Int("records", cat.Len()),
		zap.Int("formulas", len(cat.Formulas())))

	deps.Catalog = cat
	deps.Sessions = sessionstore.New(cat)
	deps.Sweeper = workers.NewSessionSweeper(deps.Sessions, logger, sweepInterval, appCfg.SessionIdleTTL)
	return deps, nil
}

func closeDatabases(deps DBDeps) {
	if deps.MongoClient != nil {
		_ = deps.MongoClient.Disconnect(context.Background())
	}
	if deps.SQL != nil {
		_ = deps.SQL.Close()
	}
}

func connectMongo(ctx context.Context, uri string, logger *zap.Logger) (*mongo.Client, error) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Load(), logger, "mongo connect")
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	logger.Info("connected to MongoDB")
	return client, nil
}

// loadCatalog builds the catalog from the configured source, reading from
// the database in deps for the mongo and sqlite sources.
func loadCatalog(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (*catalog.Catalog, error) {
	switch appCfg.CatalogSource {
	case catalog.SourceEmbedded, "":
		cat, err := catalog.Embedded()
		if err != nil {
			return nil, fmt.Errorf("load bundled catalog: %w", err)
		}
		return cat, nil

	case catalog.SourceFile:
		cat, err := catalog.LoadFile(appCfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("load catalog file: %w", err)
		}
		return cat, nil

	case catalog.SourceMongo:
		if deps.MongoDatabase == nil {
			return nil, fmt.Errorf("catalog_source=mongo without a database")
		}
		store := materialstore.New(deps.MongoDatabase, appCfg.MongoCollection)
		if appCfg.CatalogSeed {
			// The key index must exist before seeding so duplicates are rejected.
			ictx, cancel := timeouts.WithTimeout(ctx, timeouts.Seed(), logger, "ensure indexes")
			err := store.EnsureIndexes(ictx)
			cancel()
			if err != nil {
				return nil, fmt.Errorf("seed catalog: %w", err)
			}
		}
		return loadFromDB(ctx, store, appCfg.CatalogSeed, logger)

	case catalog.SourceSQLite:
		if deps.SQL == nil {
			return nil, fmt.Errorf("catalog_source=sqlite without a database")
		}
		return loadFromDB(ctx, deps.SQL, appCfg.CatalogSeed, logger)
	}
	return nil, fmt.Errorf("unknown catalog_source %q", appCfg.CatalogSource)
}

func loadFromDB(ctx context.Context, db catalogDB, seed bool, logger *zap.Logger) (*catalog.Catalog, error) {
	if seed {
		if err := seedCatalog(ctx, db, logger); err != nil {
			return nil, err
		}
	}

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Load(), logger, "catalog load")
	defer cancel()

	records, err := db.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := catalog.New(records)
	if err != nil {
		return nil, fmt.Errorf("stored catalog: %w", err)
	}
	return cat, nil
}

func seedCatalog(ctx context.Context, db catalogDB, logger *zap.Logger) error {
	records, err := catalog.EmbeddedRecords()
	if err != nil {
		return fmt.Errorf("load bundled catalog for seeding: %w", err)
	}

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Seed(), logger, "catalog seed")
	defer cancel()

	n, err := db.SeedIfEmpty(ctx, records)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if n > 0 {
		logger.Info("seeded catalog", zap.Int("records", n))
	}
	return nil
}

// EnsureSchema creates the unique key index on the Mongo catalog collection.
// The SQLite table gets its index from the migration in materialsql.Open.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Load(), logger, "ensure indexes")
	defer cancel()

	if err := materialstore.New(deps.MongoDatabase, appCfg.MongoCollection).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure catalog indexes: %w", err)
	}
	return nil
}
