// internal/app/store/snapshots/store.go
package snapshots

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/authpages/internal/domain/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a snapshot does not exist or has expired.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a context registered by the identity server, kept until the
// browser comes to render it.
type Snapshot struct {
	ID        string           `bson:"_id"`
	Context   models.KcContext `bson:"context"`
	ClientIP  string           `bson:"client_ip,omitempty"` // who registered it
	CreatedAt time.Time        `bson:"created_at"`
	ExpiresAt time.Time        `bson:"expires_at"`
}

// Store persists snapshots. Implementations are safe for concurrent use.
type Store interface {
	// Save stores kc under a new id and returns the stored snapshot.
	Save(ctx context.Context, kc models.KcContext, clientIP string) (Snapshot, error)
	// Get returns the snapshot for id, or ErrNotFound.
	Get(ctx context.Context, id string) (Snapshot, error)
}

// newSnapshot stamps a fresh snapshot with id and timestamps.
func newSnapshot(kc models.KcContext, clientIP string, ttl time.Duration) Snapshot {
	now := time.Now().UTC()
	return Snapshot{
		ID:        uuid.NewString(),
		Context:   kc,
		ClientIP:  clientIP,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}
