// Package intakeauth guards the endpoints the identity server calls: a
// bcrypt-checked bearer key and a JSON-only body.
package intakeauth

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Guard checks the intake bearer key against a bcrypt hash.
type Guard struct {
	hash []byte // empty disables the check
	log  *zap.Logger
}

// New creates a Guard. A blank hash lets every request through.
func New(hash string, logger *zap.Logger) *Guard {
	return &Guard{hash: []byte(hash), log: logger}
}

// Enabled reports whether a key is required.
func (g *Guard) Enabled() bool {
	return len(g.hash) > 0
}

// Authorized reports whether r carries the intake key.
func (g *Guard) Authorized(r *http.Request) bool {
	if !g.Enabled() {
		return true
	}
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return false
	}
	key := strings.TrimSpace(auth[len(prefix):])
	return bcrypt.CompareHashAndPassword(g.hash, []byte(key)) == nil
}

// Require answers 401 to requests without the intake key.
func (g *Guard) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Authorized(r) {
			g.log.Warn("intake auth failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			w.Header().Set("WWW-Authenticate", `Bearer realm="authpages"`)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireJSON answers 415 unless the body is declared application/json.
// Browsers cannot send that type cross-site without a preflight, so plain
// form posts never reach the handler.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mt != "application/json" {
			writeError(w, http.StatusUnsupportedMediaType, "content type must be application/json")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
