// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/matpredict/internal/app/catalog"
	"github.com/dalemusser/matpredict/internal/app/store/materialsql"
	sessionstore "github.com/dalemusser/matpredict/internal/app/store/sessions"
	"github.com/dalemusser/matpredict/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds back-end dependencies for the app.
//
// The Mongo fields are nil unless the catalog is read from MongoDB, and SQL
// is nil unless it is read from SQLite.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	SQL           *materialsql.Client

	Catalog  *catalog.Catalog
	Sessions *sessionstore.Store
	Sweeper  *workers.SessionSweeper
}
