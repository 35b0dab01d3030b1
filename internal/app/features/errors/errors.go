// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/matpredict/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Status  int
	Message string
}

// Handler renders the error pages. No dependencies; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound renders the friendly 404 page. Used as the router's NotFound handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderError(w, r, http.StatusNotFound, "Page not found", "The page you were looking for does not exist.", "/")
}

// MethodNotAllowed renders a 405 page.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	RenderError(w, r, http.StatusMethodNotAllowed, "Not allowed", "That action is not available here.", "/")
}

// RenderError writes status and renders the shared error page.
// If backURL is empty it resolves a safe back URL defaulting to /.
func RenderError(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, title, "/"),
		Status:  status,
		Message: msg,
	}
	if backURL != "" {
		data.BackURL = backURL
	}

	w.WriteHeader(status)
	templates.Render(w, r, "error_page", data)
}
