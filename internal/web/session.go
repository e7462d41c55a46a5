package web

import (
	"net/http"

	"github.com/JonMunkholm/acparts/internal/core"
)

// sessionMiddleware resolves the session cookie to a core.Session, starting a
// new session when the cookie is missing or has expired.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	store := s.service.Sessions()
	name := s.cfg.Session.CookieName

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *core.Session
		if c, err := r.Cookie(name); err == nil {
			sess, _ = store.Get(c.Value)
		}

		if sess == nil {
			sess = store.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     name,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.cfg.Session.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(core.ContextWithSession(r.Context(), sess)))
	})
}

// sessionFrom returns the session attached by sessionMiddleware.
func sessionFrom(r *http.Request) *core.Session {
	sess, ok := core.SessionFromContext(r.Context())
	if !ok {
		// Only reachable if a route is registered outside the session group.
		panic("web: request without session")
	}
	return sess
}
