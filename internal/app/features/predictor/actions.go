// internal/app/features/predictor/actions.go
package predictor

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/matpredict/internal/app/features/errors"
	"github.com/dalemusser/matpredict/internal/app/interaction"
	sessionstore "github.com/dalemusser/matpredict/internal/app/store/sessions"
	"github.com/dalemusser/matpredict/internal/app/system/limits"
	"github.com/dalemusser/matpredict/internal/app/system/websession"
	"go.uber.org/zap"
)

// HandleSelect applies one dropdown change (form fields "field" and "value").
// Changing a field clears the fields below it that no longer fit.
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxActionFormSize)
	if err := r.ParseForm(); err != nil {
		h.actionError(w, r, sess.State, http.StatusBadRequest, "Bad form submission.")
		return
	}
	field := strings.TrimSpace(r.PostFormValue("field"))
	value := strings.TrimSpace(r.PostFormValue("value"))

	if err := sess.State.Set(field, value); err != nil {
		switch {
		case errors.Is(err, interaction.ErrBusy):
			h.actionError(w, r, sess.State, http.StatusConflict, "Please wait for the current prediction to finish.")
		case errors.Is(err, interaction.ErrUnknownField), errors.Is(err, interaction.ErrUnknownOption):
			h.Log.Debug("rejected selection",
				zap.String("field", field), zap.String("value", value), zap.Error(err))
			h.actionError(w, r, sess.State, http.StatusBadRequest, "That option is not available for the current selection.")
		default:
			h.ErrLog.LogServerError(w, r, "apply selection", err, "Your selection could not be applied.", "/")
		}
		return
	}
	h.renderPanel(w, r, sess.State, "")
}

// HandlePredict runs a prediction for the visitor's complete selection and
// responds once it has resolved or failed.
func (h *Handler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	_, err := h.Runner.Run(r.Context(), sess.State)
	switch {
	case err == nil, interaction.IsLookupFailure(err):
		// The state carries the result or the failure message.
		h.renderPanel(w, r, sess.State, "")
	case errors.Is(err, interaction.ErrBusy):
		h.actionError(w, r, sess.State, http.StatusConflict, "A prediction is already in progress.")
	case errors.Is(err, interaction.ErrNotReady):
		h.actionError(w, r, sess.State, http.StatusBadRequest, "Select a formula, crystal system and space group first.")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away; the prediction settles on its own.
		h.Log.Debug("predict request ended early", zap.String("visitor", sess.ID), zap.Error(err))
	default:
		h.ErrLog.LogServerError(w, r, "run prediction", err, interaction.FailureMessage, "/")
	}
}

// HandleTheme flips between the light and dark themes.
func (h *Handler) HandleTheme(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	theme := sess.State.ToggleTheme()
	h.Log.Debug("theme toggled", zap.String("visitor", sess.ID), zap.String("theme", theme))
	if r.Header.Get("HX-Request") != "" {
		// The theme class lives on <body>, outside the panel.
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleReset clears the selection, result and error. The theme is kept.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := sess.State.Reset(); err != nil {
		if errors.Is(err, interaction.ErrBusy) {
			h.actionError(w, r, sess.State, http.StatusConflict, "Please wait for the current prediction to finish.")
			return
		}
		h.ErrLog.LogServerError(w, r, "reset selection", err, "Your selection could not be reset.", "/")
		return
	}
	h.renderPanel(w, r, sess.State, "")
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (sess *sessionstore.Session, ok bool) {
	sess, ok = websession.Current(r)
	if !ok {
		h.ErrLog.LogServerError(w, r, "predictor action without session", errNoSession,
			"Your session could not be started.", "/")
	}
	return sess, ok
}

// actionError reports a rejected action. HTMX requests get the panel back
// with a notice (htmx does not swap 4xx bodies); plain forms get an error page.
func (h *Handler) actionError(w http.ResponseWriter, r *http.Request, st *interaction.State, status int, msg string) {
	if r.Header.Get("HX-Request") != "" {
		h.renderPanel(w, r, st, msg)
		return
	}
	uierrors.RenderError(w, r, status, http.StatusText(status), msg, "/")
}
