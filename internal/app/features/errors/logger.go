// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger logs server-side failures with request context and shows the
// visitor a friendly page instead of the raw error.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// LogServerError logs msg and err at error level and renders a 500 page
// showing userMsg with a back link to backURL.
func (l *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	l.Log.Error(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))

	if r.Header.Get("HX-Request") != "" {
		// HTMX swaps would bury the page inside the form; show a plain message.
		http.Error(w, userMsg, http.StatusInternalServerError)
		return
	}
	RenderError(w, r, http.StatusInternalServerError, "Something went wrong", userMsg, backURL)
}
