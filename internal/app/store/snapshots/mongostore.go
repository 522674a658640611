// internal/app/store/snapshots/mongostore.go
package snapshots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/authpages/internal/app/system/indexes"
	"github.com/dalemusser/authpages/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoStore keeps snapshots in the "page_snapshots" collection. Expired
// documents are removed by a TTL index; reads also filter on expiry since
// the TTL monitor runs only once a minute.
type MongoStore struct {
	c   *mongo.Collection
	ttl time.Duration
}

// NewMongo creates a MongoStore whose snapshots live for ttl.
func NewMongo(db *mongo.Database, ttl time.Duration) *MongoStore {
	return &MongoStore{c: db.Collection("page_snapshots"), ttl: ttl}
}

// EnsureIndexes reconciles the TTL index and the per-client lookup index.
func (s *MongoStore) EnsureIndexes(ctx context.Context, logger *zap.Logger) error {
	want := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_snapshot_ttl"),
		},
		{
			Keys:    bson.D{{Key: "client_ip", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_snapshot_client_created"),
		},
	}
	if err := indexes.Reconcile(ctx, s.c, want, logger); err != nil {
		return fmt.Errorf("ensure snapshot indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Save(ctx context.Context, kc models.KcContext, clientIP string) (Snapshot, error) {
	snap := newSnapshot(kc, clientIP, s.ttl)
	if _, err := s.c.InsertOne(ctx, snap); err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}
	return snap, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	err := s.c.FindOne(ctx, bson.M{
		"_id":        id,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("find snapshot: %w", err)
	}
	return snap, nil
}

// CleanupExpired removes expired snapshots.
// This is a backup for when TTL index cleanup is delayed.
func (s *MongoStore) CleanupExpired(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"expires_at": bson.M{"$lt": time.Now().UTC()},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
