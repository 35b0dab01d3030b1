// internal/app/bootstrap/csrf.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

const csrfCookieName = "matpredict-csrf"

// csrfKey derives the 32-byte CSRF key from the session key. A blank
// session key gets a random per-process key.
func csrfKey(sessionKey string, logger *zap.Logger) []byte {
	if sessionKey == "" {
		logger.Warn("no session_key configured; CSRF tokens will not survive a restart")
		return securecookie.GenerateRandomKey(32)
	}
	sum := sha256.Sum256([]byte("csrf:" + sessionKey))
	return sum[:]
}

// csrfProtect wraps next with gorilla/csrf. Outside production, requests
// without TLS are marked plaintext so the origin check accepts http://.
func csrfProtect(key []byte, secure bool, logger *zap.Logger) func(http.Handler) http.Handler {
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName(csrfCookieName),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("csrf check failed",
				zap.String("path", r.URL.Path),
				zap.Error(csrf.FailureReason(r)))
			http.Error(w, "Forbidden: the form expired, reload the page and try again.", http.StatusForbidden)
		})),
	)

	return func(next http.Handler) http.Handler {
		guarded := protect(next)
		if secure {
			return guarded
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS == nil {
				r = csrf.PlaintextHTTPRequest(r)
			}
			guarded.ServeHTTP(w, r)
		})
	}
}
