// internal/app/features/predictor/api.go
package predictor

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/matpredict/internal/app/interaction"
	"go.uber.org/zap"
)

// ServeOptions returns the options consistent with the query parameters
// formula and crystal_system. An absent parameter places no constraint.
// Formulas are always the full list.
func (h *Handler) ServeOptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := h.Catalog.FilterOptions(
		strings.TrimSpace(q.Get("formula")),
		strings.TrimSpace(q.Get("crystal_system")),
	)
	h.writeJSON(w, http.StatusOK, optionsResponse{
		Formulas:       h.Catalog.Formulas(),
		CrystalSystems: opts.CrystalSystems,
		SpaceGroups:    opts.SpaceGroups,
	})
}

// ServePredict predicts the properties for formula, crystal_system and
// space_group without delay and without touching the visitor's state.
func (h *Handler) ServePredict(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := interaction.Selection{
		Formula:       strings.TrimSpace(q.Get("formula")),
		CrystalSystem: strings.TrimSpace(q.Get("crystal_system")),
		SpaceGroup:    strings.TrimSpace(q.Get("space_group")),
	}
	if !sel.Complete() {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "formula, crystal_system and space_group are required",
		})
		return
	}

	res, err := h.Runner.Predict(sel)
	if err != nil {
		if interaction.IsLookupFailure(err) {
			h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		h.Log.Error("api predict", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: interaction.FailureMessage})
		return
	}
	h.writeJSON(w, http.StatusOK, predictResponse{
		ID:        res.ID,
		Actual:    res.Actual,
		Predicted: res.Predicted,
	})
}

// ServeCatalog returns every record in the catalog.
func (h *Handler) ServeCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, catalogResponse{
		Count:   h.Catalog.Len(),
		Records: h.Catalog.Records(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Warn("write json response", zap.Error(err))
	}
}
