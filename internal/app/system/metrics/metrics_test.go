package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/authpages/internal/app/system/metrics"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	m.ObserveRender("login.ftl", metrics.OutcomeOK, time.Millisecond)
	m.ObservePageLoad("login.ftl", metrics.OutcomeOK)
	m.SnapshotRegistered()
	m.SnapshotMissed()
	m.SetCachedSnapshots(3)
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := metrics.New()
	m.ObserveRender("login.ftl", metrics.OutcomeOK, 2*time.Millisecond)
	m.ObservePageLoad("login.ftl", metrics.OutcomeFailed)
	m.SnapshotRegistered()
	m.SetCachedSnapshots(4)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	for _, want := range []string{
		`authpages_page_renders_total{outcome="ok",page="login.ftl"} 1`,
		`authpages_page_loads_total{outcome="failed",page="login.ftl"} 1`,
		`authpages_snapshots_registered_total 1`,
		`authpages_snapshot_cache_items 4`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestNew_IndependentRegistries(t *testing.T) {
	// Each call owns its registry, so building twice must not panic.
	a := metrics.New()
	b := metrics.New()
	if a.Gatherer() == b.Gatherer() {
		t.Error("expected distinct registries")
	}
}
