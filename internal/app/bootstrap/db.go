// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/authpages/internal/app/store/snapshots"
	"github.com/dalemusser/authpages/internal/app/system/ratelimit"
	"github.com/dalemusser/authpages/internal/app/system/timeouts"
	"github.com/dalemusser/authpages/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the snapshot backend selected by snapshot_backend.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	deps := DBDeps{}
	if appCfg.IntakeRateLimit > 0 {
		deps.IntakeLimiter = ratelimit.New(appCfg.IntakeRateLimit, appCfg.IntakeRateWindow)
	}

	if appCfg.SnapshotBackend != BackendMongo {
		deps.Snapshots = snapshots.NewMemory(appCfg.SnapshotTTL)
		logger.Info("using in-memory snapshot store", zap.Duration("ttl", appCfg.SnapshotTTL))
		return deps, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		return deps, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Ping(), logger, "mongo ping")
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return deps, fmt.Errorf("ping mongo: %w", err)
	}

	deps.MongoClient = client
	deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
	ms := snapshots.NewMongo(deps.MongoDatabase, appCfg.SnapshotTTL)
	deps.Snapshots = ms
	deps.Cleanup = workers.NewSnapshotCleanup(ms, logger, appCfg.CleanupInterval)
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Duration("ttl", appCfg.SnapshotTTL),
	)
	return deps, nil
}

// EnsureSchema creates the snapshot indexes when snapshots live in Mongo.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ms, ok := deps.Snapshots.(*snapshots.MongoStore)
	if !ok {
		return nil
	}
	if err := ms.EnsureIndexes(ctx, logger); err != nil {
		logger.Error("ensure snapshot indexes failed", zap.Error(err))
		return err
	}
	return nil
}
