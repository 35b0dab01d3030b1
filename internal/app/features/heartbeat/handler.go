// internal/app/features/heartbeat/handler.go
package heartbeat

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/matpredict/internal/app/system/websession"
	"go.uber.org/zap"
)

// Handler keeps an open predictor page's visitor state from being swept.
//
// The session middleware already marks the visitor active when it resolves
// the cookie; the heartbeat only has to reach it.
type Handler struct {
	Log *zap.Logger
}

// NewHandler creates a new heartbeat handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// heartbeatResponse reports the visitor's phase so a stalled page can tell
// it is out of date.
type heartbeatResponse struct {
	Phase string `json:"phase"`
	Theme string `json:"theme"`
}

// ServeHeartbeat handles POST /heartbeat.
func (h *Handler) ServeHeartbeat(w http.ResponseWriter, r *http.Request) {
	sess, ok := websession.Current(r)
	if !ok {
		w.WriteHeader(http.StatusOK) // Silent fail - no visitor session
		return
	}

	v := sess.State.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(heartbeatResponse{
		Phase: string(v.Phase),
		Theme: v.Theme,
	}); err != nil {
		h.Log.Warn("heartbeat response", zap.Error(err), zap.String("visitor", sess.ID))
	}
}
