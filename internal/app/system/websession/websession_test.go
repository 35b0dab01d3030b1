package websession_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/matpredict/internal/app/catalog"
	sessionstore "github.com/dalemusser/matpredict/internal/app/store/sessions"
	"github.com/dalemusser/matpredict/internal/app/system/websession"
	"go.uber.org/zap"
)

func newManager(t *testing.T) (*websession.Manager, *sessionstore.Store) {
	t.Helper()
	cat, err := catalog.Embedded()
	if err != nil {
		t.Fatalf("Embedded failed: %v", err)
	}
	store := sessionstore.New(cat)
	m, err := websession.NewManager("test-session-key-for-testing-only-0123", "test-session", "", 3600, false, store, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m, store
}

// echoID writes the visitor id seen by the handler.
func echoID(w http.ResponseWriter, r *http.Request) {
	sess, ok := websession.Current(r)
	if !ok {
		http.Error(w, "no session", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(sess.ID))
}

func TestLoadSession_CreatesAndReuses(t *testing.T) {
	m, store := newManager(t)
	h := m.LoadSession(http.HandlerFunc(echoID))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	firstID := rec.Body.String()
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a visitor cookie")
	}

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)

	if got := rec2.Body.String(); got != firstID {
		t.Errorf("visitor id: got %q, want %q", got, firstID)
	}
	if store.Count() != 1 {
		t.Errorf("Count: got %d, want 1", store.Count())
	}
}

func TestLoadSession_RefreshesCookieExpiry(t *testing.T) {
	m, _ := newManager(t)
	h := m.LoadSession(http.HandlerFunc(echoID))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	first := rec.Result().Cookies()
	if len(first) == 0 {
		t.Fatal("expected a visitor cookie")
	}

	req := httptest.NewRequest("POST", "/heartbeat", nil)
	for _, c := range first {
		req.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)

	refreshed := rec2.Result().Cookies()
	if len(refreshed) != 1 {
		t.Fatalf("got %d cookies on a later request, want 1", len(refreshed))
	}
	if refreshed[0].Name != "test-session" {
		t.Errorf("cookie name: got %q, want %q", refreshed[0].Name, "test-session")
	}
	if refreshed[0].MaxAge != 3600 {
		t.Errorf("MaxAge: got %d, want 3600", refreshed[0].MaxAge)
	}
	if rec2.Body.String() != rec.Body.String() {
		t.Errorf("visitor id changed: got %q, want %q", rec2.Body.String(), rec.Body.String())
	}
}

func TestLoadSession_SessionCookieNotRewritten(t *testing.T) {
	cat, err := catalog.Embedded()
	if err != nil {
		t.Fatalf("Embedded failed: %v", err)
	}
	m, err := websession.NewManager("test-session-key-for-testing-only-0123", "test-session", "", 0, false, sessionstore.New(cat), zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	h := m.LoadSession(http.HandlerFunc(echoID))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)

	if len(rec2.Result().Cookies()) != 0 {
		t.Error("a browser-session cookie should only be set once")
	}
}

func TestLoadSession_TamperedCookieGetsNewSession(t *testing.T) {
	m, store := newManager(t)
	h := m.LoadSession(http.HandlerFunc(echoID))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "test-session", Value: "garbage"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if store.Count() != 1 {
		t.Errorf("Count: got %d, want 1", store.Count())
	}
}

func TestNewManager_GeneratesKeyWhenEmpty(t *testing.T) {
	cat, _ := catalog.Embedded()
	if _, err := websession.NewManager("", "", "", 0, false, sessionstore.New(cat), zap.NewNop()); err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
}

func TestRequireSession(t *testing.T) {
	h := websession.RequireSession(http.HandlerFunc(echoID))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
}
