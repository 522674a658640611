package contexts_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/authpages/internal/app/features/contexts"
	uierrors "github.com/dalemusser/authpages/internal/app/features/errors"
	"github.com/dalemusser/authpages/internal/app/store/snapshots"
	"github.com/dalemusser/authpages/internal/app/system/intakeauth"
	"github.com/dalemusser/authpages/internal/app/system/pagetoken"
	"github.com/dalemusser/authpages/internal/app/system/ratelimit"
	"github.com/dalemusser/authpages/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const intakeKey = "intake-secret"

type fixture struct {
	handler *contexts.Handler
	router  http.Handler
	store   *snapshots.MemoryStore
	tokens  *pagetoken.Codec
}

func newFixture(t *testing.T, withAuth bool) fixture {
	t.Helper()
	logger := zap.NewNop()

	hash := ""
	if withAuth {
		b, err := bcrypt.GenerateFromPassword([]byte(intakeKey), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("bcrypt: %v", err)
		}
		hash = string(b)
	}
	tokens, err := pagetoken.New([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	if err != nil {
		t.Fatalf("pagetoken.New: %v", err)
	}
	store := snapshots.NewMemory(time.Minute)
	errLog := uierrors.NewErrorLogger(logger, nil)

	h := contexts.NewHandler(store, tokens, "https://pages.example.com/", errLog, nil, logger)
	return fixture{
		handler: h,
		router:  contexts.Routes(h, intakeauth.New(hash, logger), nil),
		store:   store,
		tokens:  tokens,
	}
}

func TestCreate_RegistersSnapshot(t *testing.T) {
	f := newFixture(t, true)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", testutil.LoginContext())
	req.Header.Set("Authorization", "Bearer "+intakeKey)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ID        string    `json:"id"`
		Token     string    `json:"token"`
		URL       string    `json:"url"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.URL != "https://pages.example.com/pages/"+resp.Token {
		t.Errorf("url = %q", resp.URL)
	}
	if !resp.ExpiresAt.After(time.Now()) {
		t.Errorf("expires_at = %v", resp.ExpiresAt)
	}

	id, err := f.tokens.Decode(resp.Token)
	if err != nil || id != resp.ID {
		t.Fatalf("token decodes to %q, %v", id, err)
	}
	ctx, cancel := testutil.TestContext()
	defer cancel()
	snap, err := f.store.Get(ctx, resp.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if snap.Context.Realm.DisplayName != "Acme" {
		t.Errorf("stored realm = %q", snap.Context.Realm.DisplayName)
	}
}

func TestRoutes_Unauthorized(t *testing.T) {
	f := newFixture(t, true)

	for _, auth := range []string{"", "Bearer wrong", "Basic " + intakeKey, "Bearer"} {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/", testutil.LoginContext())
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("auth %q: status = %d", auth, rec.Code)
		}
	}
	if f.store.ItemCount() != 0 {
		t.Errorf("unauthorized requests stored %d snapshots", f.store.ItemCount())
	}
}

func TestRoutes_RequiresJSONBody(t *testing.T) {
	f := newFixture(t, true)

	body, _ := json.Marshal(testutil.LoginContext())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Authorization", "Bearer "+intakeKey)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestRoutes_NoHashSkipsAuth(t *testing.T) {
	f := newFixture(t, false)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", testutil.LoginContext()))
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestCreate_InvalidBodies(t *testing.T) {
	h := newFixture(t, false).handler

	req := httptest.NewRequest(http.MethodPost, "/api/contexts", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad json: status = %d", rec.Code)
	}

	kc := testutil.LoginContext()
	kc.PageID = ""
	rec = httptest.NewRecorder()
	h.Create(rec, testutil.NewJSONRequest(t, http.MethodPost, "/api/contexts", kc))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid context: status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "pageId is required") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRoutes_RateLimited(t *testing.T) {
	h := newFixture(t, false).handler
	limiter := ratelimit.New(1, time.Minute)
	defer limiter.Stop()
	router := contexts.Routes(h, intakeauth.New("", zap.NewNop()), limiter)

	for i, want := range []int{http.StatusCreated, http.StatusTooManyRequests} {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/", testutil.LoginContext())
		req.RemoteAddr = "198.51.100.2:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("request %d: status = %d, want %d", i, rec.Code, want)
		}
	}
}
