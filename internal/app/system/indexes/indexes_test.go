package indexes_test

import (
	"testing"

	"github.com/dalemusser/authpages/internal/app/system/indexes"
	"github.com/dalemusser/authpages/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func ttlIndex(name string, seconds int32) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(seconds).SetName(name),
	}
}

func listed(t *testing.T, coll *mongo.Collection) map[string]bson.M {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	out := map[string]bson.M{}
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			t.Fatalf("decode: %v", err)
		}
		out[idx["name"].(string)] = idx
	}
	return out
}

func TestReconcile_CreatesAndIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	coll := db.Collection("things")

	for i := 0; i < 2; i++ {
		if err := indexes.Reconcile(ctx, coll, []mongo.IndexModel{ttlIndex("idx_ttl", 0)}, zap.NewNop()); err != nil {
			t.Fatalf("Reconcile #%d failed: %v", i+1, err)
		}
	}
	if _, ok := listed(t, coll)["idx_ttl"]; !ok {
		t.Error("idx_ttl not created")
	}
}

func TestReconcile_RenamesAndRecreates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	coll := db.Collection("things")
	log := zap.NewNop()

	if err := indexes.Reconcile(ctx, coll, []mongo.IndexModel{ttlIndex("old_name", 0)}, log); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if err := indexes.Reconcile(ctx, coll, []mongo.IndexModel{ttlIndex("idx_ttl", 60)}, log); err != nil {
		t.Fatalf("Reconcile (changed) failed: %v", err)
	}

	got := listed(t, coll)
	if _, ok := got["old_name"]; ok {
		t.Error("old index still present")
	}
	idx, ok := got["idx_ttl"]
	if !ok {
		t.Fatal("idx_ttl missing")
	}
	if v, _ := idx["expireAfterSeconds"].(int32); v != 60 {
		t.Errorf("expireAfterSeconds = %v, want 60", idx["expireAfterSeconds"])
	}
}
