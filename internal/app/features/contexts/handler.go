// internal/app/features/contexts/handler.go
package contexts

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/dalemusser/authpages/internal/app/features/errors"
	"github.com/dalemusser/authpages/internal/app/store/snapshots"
	"github.com/dalemusser/authpages/internal/app/system/metrics"
	"github.com/dalemusser/authpages/internal/app/system/pagetoken"
	"github.com/dalemusser/authpages/internal/app/system/ratelimit"
	"github.com/dalemusser/authpages/internal/app/system/timeouts"
	"github.com/dalemusser/authpages/internal/domain/models"
	"go.uber.org/zap"
)

// MaxContextBytes bounds a registered context body.
const MaxContextBytes = 1 << 20

// Handler registers contexts from the identity server as snapshots and
// hands back the browser URL that renders them.
type Handler struct {
	Store   snapshots.Store
	Tokens  *pagetoken.Codec
	BaseURL string
	ErrLog  *uierrors.ErrorLogger
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

// NewHandler constructs the intake handler. Authentication is applied by
// Routes.
func NewHandler(
	store snapshots.Store,
	tokens *pagetoken.Codec,
	baseURL string,
	errLog *uierrors.ErrorLogger,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Store:   store,
		Tokens:  tokens,
		BaseURL: strings.TrimRight(baseURL, "/"),
		ErrLog:  errLog,
		Metrics: m,
		Log:     logger,
	}
}

// registerResponse is the JSON answer to a registration.
type registerResponse struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Create handles POST /api/contexts.
//
// On success: 201 and
//
//	{ "id":"…", "token":"…", "url":"https://pages.example.com/pages/…", "expires_at":"…" }
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxContextBytes)
	var kc models.KcContext
	if err := json.NewDecoder(r.Body).Decode(&kc); err != nil {
		h.ErrLog.LogJSON(w, r, http.StatusBadRequest, "decode context failed", err, "invalid JSON body")
		return
	}
	if err := kc.Validate(); err != nil {
		h.ErrLog.LogJSON(w, r, http.StatusUnprocessableEntity, "invalid context", err, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "save snapshot")
	defer cancel()

	snap, err := h.Store.Save(ctx, kc, ratelimit.ClientIP(r))
	if err != nil {
		h.ErrLog.LogJSON(w, r, http.StatusInternalServerError, "save snapshot failed", err, "could not store context")
		return
	}
	token, err := h.Tokens.Encode(snap.ID)
	if err != nil {
		h.ErrLog.LogJSON(w, r, http.StatusInternalServerError, "sign page token failed", err, "could not store context")
		return
	}

	h.Metrics.SnapshotRegistered()
	if counted, ok := h.Store.(interface{ ItemCount() int }); ok {
		h.Metrics.SetCachedSnapshots(counted.ItemCount())
	}
	h.Log.Debug("context registered",
		zap.String("snapshot_id", snap.ID),
		zap.String("page", kc.PageID),
	)

	uierrors.WriteJSON(w, http.StatusCreated, registerResponse{
		ID:        snap.ID,
		Token:     token,
		URL:       h.BaseURL + "/pages/" + token,
		ExpiresAt: snap.ExpiresAt,
	})
}
