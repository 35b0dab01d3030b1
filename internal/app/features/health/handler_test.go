package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/matpredict/internal/app/features/health"
	"github.com/dalemusser/matpredict/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type response struct {
	Status         string `json:"status"`
	CatalogRecords int    `json:"catalog_records"`
	Database       string `json:"database"`
	Message        string `json:"message"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestServe_WithoutDatabase(t *testing.T) {
	handler := health.NewHandler(nil, nil, testutil.Catalog(t), zap.NewNop())

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}

	resp := decode(t, rec)
	if resp.Status != "ok" {
		t.Errorf("status: got %q, want %q", resp.Status, "ok")
	}
	if resp.Database != "not_configured" {
		t.Errorf("database: got %q, want %q", resp.Database, "not_configured")
	}
	if resp.CatalogRecords != len(testutil.Records()) {
		t.Errorf("catalog_records: got %d, want %d", resp.CatalogRecords, len(testutil.Records()))
	}
}

func TestServe_DatabaseConnected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := health.NewHandler(db.Client(), nil, testutil.Catalog(t), zap.NewNop())

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if resp := decode(t, rec); resp.Database != "connected" {
		t.Errorf("database: got %q, want %q", resp.Database, "connected")
	}
}

func TestServe_DatabaseDisconnected(t *testing.T) {
	// A client that was never connected fails every ping.
	client, err := mongo.NewClient(options.Client().ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200 * time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_ = client.Disconnect(context.Background())

	handler := health.NewHandler(client, nil, testutil.Catalog(t), zap.NewNop())

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.Serve(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	resp := decode(t, rec)
	if resp.Status != "error" || resp.Database != "disconnected" {
		t.Errorf("got status %q database %q, want error/disconnected", resp.Status, resp.Database)
	}
	if resp.Message != "Database unavailable" {
		t.Errorf("message: got %q", resp.Message)
	}
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestServe_SQLPing(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantDB   string
	}{
		{"up", nil, http.StatusOK, "connected"},
		{"down", errors.New("database is closed"), http.StatusServiceUnavailable, "disconnected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := health.NewHandler(nil, fakePinger{err: tt.err}, testutil.Catalog(t), zap.NewNop())

			rec := httptest.NewRecorder()
			handler.Serve(rec, httptest.NewRequest("GET", "/health", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantCode)
			}
			if resp := decode(t, rec); resp.Database != tt.wantDB {
				t.Errorf("database: got %q, want %q", resp.Database, tt.wantDB)
			}
		})
	}
}

func TestRoutes(t *testing.T) {
	r := health.Routes(health.NewHandler(nil, nil, testutil.Catalog(t), zap.NewNop()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /: got %d, want %d", rec.Code, http.StatusOK)
	}
}
