// internal/app/system/metrics/metrics.go
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "authpages"

// Render outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeFailed      = "failed"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records
// nothing, so handlers under test can skip wiring it.
type Metrics struct {
	gatherer prometheus.Gatherer

	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	pageLoads      *prometheus.CounterVec
	snapshots      prometheus.Counter
	snapshotMisses prometheus.Counter
	cachedSnaps    prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		gatherer: reg,
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "page_renders_total",
				Help:      "Rendered pages by page id and outcome",
			}, []string{"page", "outcome"}),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "page_render_seconds",
				Help:      "Time spent rendering a page",
				Buckets:   prometheus.DefBuckets,
			}, []string{"page"}),
		pageLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "page_loads_total",
				Help:      "Lazy page template loads by page and outcome",
			}, []string{"page", "outcome"}),
		snapshots: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshots_registered_total",
				Help:      "Contexts registered through the intake API",
			}),
		snapshotMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_misses_total",
				Help:      "Page requests for unknown or expired snapshots",
			}),
		cachedSnaps: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "snapshot_cache_items",
				Help:      "The amount of snapshots in the memory cache",
			}),
	}

	reg.MustRegister(
		m.renders,
		m.renderDuration,
		m.pageLoads,
		m.snapshots,
		m.snapshotMisses,
		m.cachedSnaps,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRender records one page render.
func (m *Metrics) ObserveRender(page, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(page, outcome).Inc()
	m.renderDuration.WithLabelValues(page).Observe(took.Seconds())
}

// ObservePageLoad records a lazy page load.
func (m *Metrics) ObservePageLoad(page, outcome string) {
	if m == nil {
		return
	}
	m.pageLoads.WithLabelValues(page, outcome).Inc()
}

// SnapshotRegistered counts a stored context.
func (m *Metrics) SnapshotRegistered() {
	if m == nil {
		return
	}
	m.snapshots.Inc()
}

// SnapshotMissed counts a lookup for a missing snapshot.
func (m *Metrics) SnapshotMissed() {
	if m == nil {
		return
	}
	m.snapshotMisses.Inc()
}

// SetCachedSnapshots reports the memory backend's item count.
func (m *Metrics) SetCachedSnapshots(n int) {
	if m == nil {
		return
	}
	m.cachedSnaps.Set(float64(n))
}

// Gatherer exposes the registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
