// internal/app/features/heartbeat/routes.go
package heartbeat

import (
	"github.com/dalemusser/matpredict/internal/app/system/websession"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for heartbeat endpoints. It must be mounted
// behind websession.LoadSession.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(websession.RequireSession)
	r.Post("/", h.ServeHeartbeat)
	return r
}
