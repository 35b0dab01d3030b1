package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/matpredict/internal/app/catalog"
	"github.com/dalemusser/matpredict/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Database states reported by the health endpoint.
const (
	dbConnected     = "connected"
	dbDisconnected  = "disconnected"
	dbNotConfigured = "not_configured"
)

// Pinger is a SQL catalog database (materialsql.Client).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client  *mongo.Client // nil when the catalog is not read from MongoDB
	SQL     Pinger        // nil when the catalog is not read from SQLite
	Catalog *catalog.Catalog
	Log     *zap.Logger
}

// NewHandler constructs a health Handler. client and sql may be nil.
func NewHandler(client *mongo.Client, sql Pinger, cat *catalog.Catalog, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		SQL:     sql,
		Catalog: cat,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status         string `json:"status"`
	CatalogRecords int    `json:"catalog_records"`
	Database       string `json:"database"`
	Message        string `json:"message,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "catalog_records":40, "database":"connected" }
//
// On DB failure: 503 and
//
//	{ "status":"error", "catalog_records":40, "database":"disconnected", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: dbNotConfigured,
	}
	if h.Catalog != nil {
		resp.CatalogRecords = h.Catalog.Len()
	}

	if ping := h.pinger(); ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
		defer cancel()

		if err := ping(ctx); err != nil {
			h.Log.Error("health-check: database ping failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			resp.Status = "error"
			resp.Database = dbDisconnected
			resp.Message = "Database unavailable"
			resp.Error = err.Error()
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		resp.Database = dbConnected
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// pinger returns the configured database's ping, or nil when the catalog
// does not come from a database.
func (h *Handler) pinger() func(context.Context) error {
	switch {
	case h.Client != nil:
		return func(ctx context.Context) error { return h.Client.Ping(ctx, readpref.Primary()) }
	case h.SQL != nil:
		return h.SQL.Ping
	}
	return nil
}
