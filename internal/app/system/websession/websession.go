// internal/app/system/websession/websession.go
package websession

import (
	"context"
	"fmt"
	"net/http"

	sessionstore "github.com/dalemusser/matpredict/internal/app/store/sessions"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Cookie constants                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	DefaultCookieName = "matpredict-session"

	visitorIDKey = "visitor_id"
)

// Manager ties the signed visitor cookie to the in-memory session store.
// The cookie carries only the visitor id; the selection lives server-side.
type Manager struct {
	cookies *sessions.CookieStore
	name    string
	store   *sessionstore.Store
	log     *zap.Logger
}

// NewManager builds a Manager.
//
// An empty sessionKey generates a random key: visitors keep their state only
// until the process restarts. secure marks cookies Secure with SameSite=None;
// otherwise SameSite=Lax is used so cookies work over plain http in dev.
func NewManager(sessionKey, name, domain string, maxAge int, secure bool, store *sessionstore.Store, logger *zap.Logger) (*Manager, error) {
	key := []byte(sessionKey)
	if sessionKey == "" {
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, fmt.Errorf("generate session key: random source unavailable")
		}
		logger.Warn("session_key not set; using a random key for this process")
	} else if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultCookieName
	}

	cs := sessions.NewCookieStore(key)
	cs.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		cs.Options.SameSite = http.SameSiteNoneMode
	} else {
		cs.Options.SameSite = http.SameSiteLaxMode
	}

	logger.Info("visitor session cookies initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &Manager{cookies: cs, name: name, store: store, log: logger}, nil
}

type ctxKey string

const sessionCtxKey ctxKey = "visitorSession"

// LoadSession resolves the visitor's session from the cookie, creating one
// when it is missing, invalid or expired, and injects it into the request
// context. With a non-zero max age the cookie is refreshed on every request.
func (m *Manager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A decode error (tampered or rotated key) yields a fresh session.
		cookie, _ := m.cookies.Get(r, m.name)
		id, _ := cookie.Values[visitorIDKey].(string)

		sess, created := m.store.GetOrCreate(id)
		if created {
			m.log.Debug("visitor session created", zap.String("visitor_id", sess.ID))
		}
		// A cookie with a Max-Age is re-sent on every request so its expiry
		// slides with activity; a browser-session cookie only on creation.
		if created || m.cookies.Options.MaxAge > 0 {
			cookie.Values[visitorIDKey] = sess.ID
			if err := cookie.Save(r, w); err != nil {
				m.log.Warn("failed to save visitor cookie", zap.Error(err))
			}
		}

		next.ServeHTTP(w, WithSession(r, sess))
	})
}

// Current returns the visitor session injected by LoadSession.
func Current(r *http.Request) (*sessionstore.Session, bool) {
	s, ok := r.Context().Value(sessionCtxKey).(*sessionstore.Session)
	return s, ok && s != nil
}

// WithSession returns r carrying sess. Tests use it to bypass the cookie.
func WithSession(r *http.Request, sess *sessionstore.Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionCtxKey, sess))
}

// RequireSession responds 500 when LoadSession did not run. It guards
// routers mounted outside the global middleware.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := Current(r); !ok {
			http.Error(w, "visitor session unavailable", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r)
	})
}
