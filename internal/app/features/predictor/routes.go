// internal/app/features/predictor/routes.go
package predictor

import (
	"net/http"

	"github.com/dalemusser/matpredict/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the page and its form actions. The router is expected to
// carry the visitor session and CSRF middleware. limiter may be nil.
func Routes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePage)
	r.Post("/select", h.HandleSelect)
	r.Post("/theme", h.HandleTheme)
	r.Post("/reset", h.HandleReset)
	r.With(limit(limiter)).Post("/predict", h.HandlePredict)
	return r
}

// APIRoutes mounts the read-only JSON API.
func APIRoutes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Get("/options", h.ServeOptions)
	r.Get("/catalog", h.ServeCatalog)
	r.With(limit(limiter)).Get("/predict", h.ServePredict)
	return r
}

func limit(l *ratelimit.Limiter) func(http.Handler) http.Handler {
	if l == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return l.PerClient()
}
