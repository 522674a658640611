// internal/app/store/snapshots/memorystore.go
package snapshots

import (
	"context"
	"time"

	"github.com/dalemusser/authpages/internal/domain/models"
	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps snapshots in process. Suitable for a single instance or
// for development; use MongoStore when several instances share traffic.
type MemoryStore struct {
	c   *cache.Cache
	ttl time.Duration
}

// NewMemory creates a MemoryStore whose snapshots live for ttl.
func NewMemory(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		c:   cache.New(ttl, 2*ttl),
		ttl: ttl,
	}
}

func (s *MemoryStore) Save(ctx context.Context, kc models.KcContext, clientIP string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	snap := newSnapshot(kc, clientIP, s.ttl)
	s.c.Set(snap.ID, snap, cache.DefaultExpiration)
	return snap, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	x, found := s.c.Get(id)
	if !found {
		return Snapshot{}, ErrNotFound
	}
	return x.(Snapshot), nil
}

// ItemCount returns the number of cached snapshots, expired ones included
// until the janitor runs.
func (s *MemoryStore) ItemCount() int {
	return s.c.ItemCount()
}
