// internal/app/system/workers/snapshotcleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ExpiredCleaner deletes expired snapshots and reports how many it removed.
type ExpiredCleaner interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// SnapshotCleanup is a background worker that removes expired snapshots.
// It backs up the Mongo TTL monitor, which only runs about once a minute.
type SnapshotCleanup struct {
	store    ExpiredCleaner
	log      *zap.Logger
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSnapshotCleanup creates a cleanup worker that runs every interval.
func NewSnapshotCleanup(store ExpiredCleaner, logger *zap.Logger, interval time.Duration) *SnapshotCleanup {
	return &SnapshotCleanup{
		store:    store,
		log:      logger,
		interval: interval,
		timeout:  30 * time.Second,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *SnapshotCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("snapshot cleanup worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish. Safe to call
// more than once.
func (w *SnapshotCleanup) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("snapshot cleanup worker stopped")
	})
}

func (w *SnapshotCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce performs a single cleanup pass.
func (w *SnapshotCleanup) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	count, err := w.store.CleanupExpired(ctx)
	if err != nil {
		w.log.Error("failed to clean up expired snapshots", zap.Error(err))
		return
	}
	if count > 0 {
		w.log.Debug("removed expired snapshots", zap.Int64("count", count))
	}
}
