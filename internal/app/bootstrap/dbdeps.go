// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/authpages/internal/app/store/snapshots"
	"github.com/dalemusser/authpages/internal/app/system/ratelimit"
	"github.com/dalemusser/authpages/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds back-end dependencies for the app. The Mongo handles are nil
// with the memory snapshot backend.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Snapshots     snapshots.Store
	IntakeLimiter *ratelimit.Limiter
	Cleanup       *workers.SnapshotCleanup // nil with the memory backend
}
