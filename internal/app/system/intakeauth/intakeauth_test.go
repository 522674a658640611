package intakeauth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/authpages/internal/app/system/intakeauth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const key = "intake-secret"

func guard(t *testing.T) *intakeauth.Guard {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return intakeauth.New(string(b), zap.NewNop())
}

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestRequire(t *testing.T) {
	h := guard(t).Require(ok)

	tests := []struct {
		auth string
		want int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer", http.StatusUnauthorized},
		{"Bearer wrong", http.StatusUnauthorized},
		{"Basic " + key, http.StatusUnauthorized},
		{"Bearer " + key, http.StatusNoContent},
		{"bearer " + key, http.StatusNoContent},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/render", nil)
		if tt.auth != "" {
			req.Header.Set("Authorization", tt.auth)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("auth %q: status = %d, want %d", tt.auth, rec.Code, tt.want)
		}
		if tt.want == http.StatusUnauthorized && rec.Header().Get("WWW-Authenticate") == "" {
			t.Errorf("auth %q: WWW-Authenticate missing", tt.auth)
		}
	}
}

func TestRequire_NoHashLetsEverythingThrough(t *testing.T) {
	g := intakeauth.New("", zap.NewNop())
	if g.Enabled() {
		t.Fatal("guard without hash should be disabled")
	}
	rec := httptest.NewRecorder()
	g.Require(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestRequireJSON(t *testing.T) {
	h := intakeauth.RequireJSON(ok)

	tests := []struct {
		contentType string
		want        int
	}{
		{"", http.StatusUnsupportedMediaType},
		{"text/plain", http.StatusUnsupportedMediaType},
		{"application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"multipart/form-data; boundary=x", http.StatusUnsupportedMediaType},
		{"application/json", http.StatusNoContent},
		{"application/json; charset=utf-8", http.StatusNoContent},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`{}`))
		if tt.contentType != "" {
			req.Header.Set("Content-Type", tt.contentType)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("content type %q: status = %d, want %d", tt.contentType, rec.Code, tt.want)
		}
	}
}
