// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

/*
Reconcile makes coll carry the desired indexes. It is idempotent and is
called at startup. An existing index with the same key pattern is reused
when its options match, renamed when only the name differs, and dropped and
recreated otherwise. Errors are aggregated so every problem is visible.
*/
func Reconcile(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel, logger *zap.Logger) error {
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		return fmt.Errorf("%s: list indexes: %w", coll.Name(), err)
	}

	var errs []string
	for _, m := range models {
		want := describe(m)
		start := time.Now()
		log := logger.With(
			zap.String("collection", coll.Name()),
			zap.String("name", want.Name),
			zap.String("keys", want.sig),
		)

		ex, ok := existing[want.sig]
		switch {
		case !ok:
			if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
				log.Warn("index ensure failed", zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), want.Name, err))
				continue
			}
			log.Info("index ensured", zap.Duration("took", time.Since(start)))

		case ex.sameOptions(want) && (want.Name == "" || ex.Name == want.Name):
			log.Debug("reusing existing index")

		default:
			// Options or name differ: drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				log.Warn("drop existing index failed", zap.String("existing", ex.Name), zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), want.Name, err))
				continue
			}
			if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
				log.Warn("recreate index failed", zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): recreate failed: %v", coll.Name(), want.Name, err))
				continue
			}
			log.Info("index dropped and recreated",
				zap.String("existing", ex.Name),
				zap.Duration("took", time.Since(start)))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// index is the part of an index definition Reconcile compares.
type index struct {
	Name               string `bson:"name"`
	Key                bson.D `bson:"key"`
	Unique             *bool  `bson:"unique,omitempty"`
	ExpireAfterSeconds *int32 `bson:"expireAfterSeconds,omitempty"`
	sig                string
}

func (i index) sameOptions(o index) bool {
	return boolVal(i.Unique) == boolVal(o.Unique) && ttlVal(i.ExpireAfterSeconds) == ttlVal(o.ExpireAfterSeconds)
}

func describe(m mongo.IndexModel) index {
	keys, _ := m.Keys.(bson.D)
	idx := index{Key: keys, sig: keySig(keys)}
	if m.Options != nil {
		if m.Options.Name != nil {
			idx.Name = *m.Options.Name
		}
		idx.Unique = m.Options.Unique
		idx.ExpireAfterSeconds = m.Options.ExpireAfterSeconds
	}
	return idx
}

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]index, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]index{}
	for cur.Next(ctx) {
		var idx index
		if err := cur.Decode(&idx); err != nil {
			return nil, err
		}
		idx.sig = keySig(idx.Key)
		out[idx.sig] = idx
	}
	return out, cur.Err()
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(b *bool) bool {
	return b != nil && *b
}

// ttlVal returns -1 for indexes without a TTL.
func ttlVal(s *int32) int64 {
	if s == nil {
		return -1
	}
	return int64(*s)
}
