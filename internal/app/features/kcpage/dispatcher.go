// internal/app/features/kcpage/dispatcher.go
package kcpage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dalemusser/authpages/internal/app/system/i18n"
	"github.com/dalemusser/authpages/internal/app/system/metrics"
	"github.com/dalemusser/authpages/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrPageUnavailable is returned when a registered page could not be loaded
// in time or failed to load.
var ErrPageUnavailable = errors.New("page unavailable")

// Page renders one page id.
type Page interface {
	Render(w io.Writer, kc *models.KcContext, msg *i18n.Accessor) error
}

// Loader prepares a page on first use.
type Loader func() (Page, error)

// Dispatcher maps page ids to pages. Registered pages load lazily; ids
// without a registration get the fallback page.
type Dispatcher struct {
	fallback Page
	log      *zap.Logger
	metrics  *metrics.Metrics

	mu      sync.RWMutex
	loaders map[string]Loader
	loaded  map[string]Page
	group   singleflight.Group
}

// NewDispatcher creates a Dispatcher whose unmatched ids render fallback.
func NewDispatcher(fallback Page, m *metrics.Metrics, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		fallback: fallback,
		log:      logger,
		metrics:  m,
		loaders:  make(map[string]Loader),
		loaded:   make(map[string]Page),
	}
}

// Register adds a lazily loaded page for pageID. Registering an id again
// replaces its loader and drops any loaded page.
func (d *Dispatcher) Register(pageID string, load Loader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loaders[pageID] = load
	delete(d.loaded, pageID)
}

// Registered reports whether pageID has a dedicated page.
func (d *Dispatcher) Registered(pageID string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.loaders[pageID]
	return ok
}

// Resolve returns the page for pageID, loading it on first use. Unknown ids
// resolve to the fallback without error. Concurrent first requests share
// one load; a caller whose ctx ends first gets ErrPageUnavailable while the
// load carries on for later requests.
func (d *Dispatcher) Resolve(ctx context.Context, pageID string) (Page, error) {
	d.mu.RLock()
	page, ok := d.loaded[pageID]
	load, registered := d.loaders[pageID]
	d.mu.RUnlock()

	if ok {
		return page, nil
	}
	if !registered {
		return d.fallback, nil
	}

	ch := d.group.DoChan(pageID, func() (any, error) {
		p, err := load()
		if err != nil {
			d.metrics.ObservePageLoad(pageID, metrics.OutcomeFailed)
			return nil, err
		}
		d.mu.Lock()
		d.loaded[pageID] = p
		d.mu.Unlock()
		d.metrics.ObservePageLoad(pageID, metrics.OutcomeOK)
		d.log.Info("page loaded", zap.String("page", pageID))
		return p, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("%w: load %s: %v", ErrPageUnavailable, pageID, res.Err)
		}
		return res.Val.(Page), nil
	case <-ctx.Done():
		d.metrics.ObservePageLoad(pageID, metrics.OutcomeUnavailable)
		return nil, fmt.Errorf("%w: load %s: %v", ErrPageUnavailable, pageID, ctx.Err())
	}
}

// Preload loads every registered page now, returning the first failure.
func (d *Dispatcher) Preload(ctx context.Context) error {
	d.mu.RLock()
	ids := make([]string, 0, len(d.loaders))
	for id := range d.loaders {
		ids = append(ids, id)
	}
	d.mu.RUnlock()

	for _, id := range ids {
		if _, err := d.Resolve(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
