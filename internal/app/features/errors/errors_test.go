package errors_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/authpages/internal/app/features/defaultpage"
	uierrors "github.com/dalemusser/authpages/internal/app/features/errors"
	"github.com/dalemusser/authpages/internal/app/features/layout"
	"github.com/dalemusser/authpages/internal/app/system/i18n"
	"github.com/dalemusser/authpages/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newErrorLogger(t *testing.T, logger *zap.Logger) *uierrors.ErrorLogger {
	t.Helper()
	shell, err := layout.New(layout.Theme{})
	if err != nil {
		t.Fatalf("layout.New: %v", err)
	}
	cat, err := i18n.Load("en")
	if err != nil {
		t.Fatalf("i18n.Load: %v", err)
	}
	return uierrors.NewErrorLogger(logger, uierrors.NewPages(defaultpage.New(shell), cat))
}

func TestLogServerError_RendersLocalizedPage(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := newErrorLogger(t, zap.New(core))

	kc := testutil.LoginContext()
	req := httptest.NewRequest(http.MethodPost, "/render", nil)
	req.Header.Set("Accept-Language", "de")
	rec := httptest.NewRecorder()

	e.LogServerError(rec, req, "page load failed", errors.New("boom"), "pageUnavailable", &kc)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `role="alert"`) {
		t.Error("error banner missing")
	}
	if !strings.Contains(body, "<title>Anmeldung bei Acme</title>") {
		t.Error("realm of the interrupted flow should carry over")
	}
	if rec.Header().Get("Content-Language") != "de" {
		t.Errorf("Content-Language = %q", rec.Header().Get("Content-Language"))
	}

	if logs.Len() != 1 {
		t.Fatalf("expected one log entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Level != zapcore.ErrorLevel || entry.Message != "page load failed" {
		t.Errorf("entry = %v %q", entry.Level, entry.Message)
	}
}

func TestLogNotFound(t *testing.T) {
	e := newErrorLogger(t, zap.NewNop())
	rec := httptest.NewRecorder()
	e.LogNotFound(rec, httptest.NewRequest(http.MethodGet, "/pages/x", nil), "snapshot missing", nil, "pageExpired")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "This page has expired.") {
		t.Error("expired message missing")
	}
	if !strings.Contains(body, "<title>We are sorry...</title>") {
		t.Error("error page title missing")
	}
}

func TestLogJSON(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := newErrorLogger(t, zap.New(core))

	rec := httptest.NewRecorder()
	e.LogJSON(rec, httptest.NewRequest(http.MethodPost, "/api/contexts", nil), http.StatusUnauthorized, "intake auth failed", nil, "unauthorized")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "unauthorized" {
		t.Errorf("body = %v", body)
	}
	if logs.All()[0].Level != zapcore.WarnLevel {
		t.Errorf("4xx should log at warn")
	}
}

func TestNilPagesFallsBackToPlainText(t *testing.T) {
	e := uierrors.NewErrorLogger(zap.NewNop(), nil)
	rec := httptest.NewRecorder()
	e.LogBadRequest(rec, httptest.NewRequest(http.MethodPost, "/render", nil), "bad json", nil, "invalidRequest")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}
