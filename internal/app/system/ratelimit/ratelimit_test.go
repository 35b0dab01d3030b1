package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/matpredict/internal/app/system/ratelimit"
)

func TestAllow_WindowResets(t *testing.T) {
	l := ratelimit.New(2, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.SetNow(func() time.Time { return now })

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests should be allowed")
	}
	if l.Allow("a") {
		t.Error("third request should be rejected")
	}
	if !l.Allow("b") {
		t.Error("other keys have their own window")
	}

	now = now.Add(61 * time.Second)
	if !l.Allow("a") {
		t.Error("request after the window should be allowed")
	}
}

func TestAllow_ZeroLimitDisables(t *testing.T) {
	l := ratelimit.New(0, time.Minute)
	for i := 0; i < 100; i++ {
		if !l.Allow("a") {
			t.Fatal("zero limit should never reject")
		}
	}
}

func TestMiddleware_Returns429(t *testing.T) {
	l := ratelimit.New(1, time.Minute)
	h := l.Middleware(ratelimit.ClientIP)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest("GET", "/api/predict", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("first: got %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second: got %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestClientIP_IgnoresForwardingHeaders(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		xri    string
		remote string
		want   string
	}{
		{"forwarded for ignored", "203.0.113.5", "", "10.0.0.2:1", "10.0.0.2"},
		{"real ip ignored", "", "198.51.100.7", "10.0.0.2:1", "10.0.0.2"},
		{"remote addr", "", "", "192.0.2.9:4242", "192.0.2.9"},
		{"remote without port", "", "", "192.0.2.9", "192.0.2.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ratelimit.ClientIP(r); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProxiedClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		xri    string
		remote string
		want   string
	}{
		{"forwarded for", "203.0.113.5, 10.0.0.1", "", "10.0.0.2:1", "203.0.113.5"},
		{"real ip", "", "198.51.100.7", "10.0.0.2:1", "198.51.100.7"},
		{"remote addr", "", "", "192.0.2.9:4242", "192.0.2.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ratelimit.ProxiedClientIP(r); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// A rotated X-Forwarded-For opens no fresh window unless proxies are trusted.
func TestPerClient_RotatedForwardedFor(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		wantSecond int
	}{
		{"direct", false, http.StatusTooManyRequests},
		{"behind proxy", true, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ratelimit.New(1, time.Minute)
			l.TrustProxyHeaders = tt.trustProxy
			h := l.PerClient()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))

			send := func(xff string) int {
				req := httptest.NewRequest("GET", "/api/predict", nil)
				req.RemoteAddr = "10.0.0.1:5555"
				req.Header.Set("X-Forwarded-For", xff)
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, req)
				return rec.Code
			}

			if code := send("203.0.113.1"); code != http.StatusNoContent {
				t.Fatalf("first: got %d, want 204", code)
			}
			if code := send("203.0.113.2"); code != tt.wantSecond {
				t.Errorf("second: got %d, want %d", code, tt.wantSecond)
			}
		})
	}
}
