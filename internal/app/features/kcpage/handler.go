// internal/app/features/kcpage/handler.go
package kcpage

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/authpages/internal/app/features/errors"
	"github.com/dalemusser/authpages/internal/app/store/snapshots"
	"github.com/dalemusser/authpages/internal/app/system/i18n"
	"github.com/dalemusser/authpages/internal/app/system/metrics"
	"github.com/dalemusser/authpages/internal/app/system/pagetoken"
	"github.com/dalemusser/authpages/internal/app/system/timeouts"
	"github.com/dalemusser/authpages/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MaxContextBytes bounds a posted context body.
const MaxContextBytes = 1 << 20

// Handler renders pages from posted contexts and from stored snapshots.
type Handler struct {
	Pages   *Dispatcher
	Catalog *i18n.Catalog
	Store   snapshots.Store
	Tokens  *pagetoken.Codec
	ErrLog  *uierrors.ErrorLogger
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

// NewHandler constructs the page handler.
func NewHandler(
	pages *Dispatcher,
	catalog *i18n.Catalog,
	store snapshots.Store,
	tokens *pagetoken.Codec,
	errLog *uierrors.ErrorLogger,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Pages:   pages,
		Catalog: catalog,
		Store:   store,
		Tokens:  tokens,
		ErrLog:  errLog,
		Metrics: m,
		Log:     logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /render                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRender renders the context in the request body.
func (h *Handler) ServeRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxContextBytes)

	var kc models.KcContext
	if err := json.NewDecoder(r.Body).Decode(&kc); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode context failed", err, "invalidRequest")
		return
	}
	if err := kc.Validate(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid context", err, "invalidRequest")
		return
	}
	h.render(w, r, &kc)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /pages/{token}                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// ServePage renders a stored snapshot. The token is the signed snapshot id
// handed out by the intake API.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	id, err := h.Tokens.Decode(chi.URLParam(r, "token"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "bad page token", err, "pageExpired")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load snapshot")
	defer cancel()

	snap, err := h.Store.Get(ctx, id)
	if errors.Is(err, snapshots.ErrNotFound) {
		h.Metrics.SnapshotMissed()
		h.ErrLog.LogNotFound(w, r, "snapshot not found", err, "pageExpired")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load snapshot failed", err, "pageUnavailable", nil)
		return
	}
	h.render(w, r, &snap.Context)
}

// render resolves the page for kc and writes it. Nothing is written until
// the page has rendered completely.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, kc *models.KcContext) {
	start := time.Now()
	label := h.metricLabel(kc.PageID)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.PageLoad(), h.Log, "load page")
	defer cancel()

	page, err := h.Pages.Resolve(ctx, kc.PageID)
	if err != nil {
		h.Metrics.ObserveRender(label, metrics.OutcomeUnavailable, time.Since(start))
		h.ErrLog.LogServerError(w, r, "page unavailable", err, "pageUnavailable", kc)
		return
	}

	msg := h.Catalog.For(kc, r.Header.Get("Accept-Language"))

	var buf bytes.Buffer
	if err := page.Render(&buf, kc, msg); err != nil {
		h.Metrics.ObserveRender(label, metrics.OutcomeFailed, time.Since(start))
		h.ErrLog.LogServerError(w, r, "render page failed", err, "pageUnavailable", kc)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Language", msg.CurrentLanguage().LanguageTag)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Log.Warn("write page failed", zap.String("page", kc.PageID), zap.Error(err))
	}
	h.Metrics.ObserveRender(label, metrics.OutcomeOK, time.Since(start))
}

// metricLabel keeps label cardinality bounded: arbitrary page ids from the
// identity server all count as "default".
func (h *Handler) metricLabel(pageID string) string {
	if h.Pages.Registered(pageID) {
		return pageID
	}
	return "default"
}
