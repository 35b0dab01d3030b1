// internal/app/features/predictor/page.go
package predictor

import (
	"errors"
	"net/http"

	"github.com/dalemusser/matpredict/internal/app/interaction"
	"github.com/dalemusser/matpredict/internal/app/system/viewdata"
	"github.com/dalemusser/matpredict/internal/app/system/websession"
	"github.com/dalemusser/waffle/pantry/templates"
)

var errNoSession = errors.New("no visitor session on request")

// ServePage renders the full predictor page for the visitor's current state.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	sess, ok := websession.Current(r)
	if !ok {
		h.ErrLog.LogServerError(w, r, "predictor page without session", errNoSession,
			"Your session could not be started.", "/")
		return
	}
	templates.Render(w, r, "predictor_page", h.buildPageData(r, sess.State.Snapshot(), ""))
}

// renderPanel writes the part of the page that changes after an action:
// the HTMX panel snippet, or a redirect back to the page for plain forms.
func (h *Handler) renderPanel(w http.ResponseWriter, r *http.Request, st *interaction.State, notice string) {
	if r.Header.Get("HX-Request") != "" {
		templates.RenderSnippet(w, "predictor_panel", h.buildPageData(r, st.Snapshot(), notice))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) buildPageData(r *http.Request, view interaction.View, notice string) pageData {
	base := viewdata.NewBaseVM(r, "Material Properties Predictor", "/")
	base.Theme = view.Theme
	return pageData{
		BaseVM: base,
		View:   view,
		Fields: buildFields(view),
		Cards:  buildCards(view.Result),
		Notice: notice,
	}
}
