package middleware

import (
	"context"
	"net/http"

	"github.com/retshidi-radebe/bzfitness/internal/service"
)

type contextKeyAuth string

// SessionKey is the context key for the verified admin session.
const SessionKey contextKeyAuth = "admin_session"

// Verifier validates a session token. *service.AuthService implements it.
type Verifier interface {
	Verify(token string) (*service.Session, error)
}

// LoginPath is where RequirePage sends visitors without a valid session.
const LoginPath = "/admin/login"

// verify reads the session cookie and checks it with v.
func verify(v Verifier, r *http.Request) (*service.Session, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	sess, err := v.Verify(c.Value)
	if err != nil {
		return nil, false
	}
	return sess, true
}

func withSession(r *http.Request, sess *service.Session) *http.Request {
	annotate(r.Context(), sess.Username)
	return r.WithContext(context.WithValue(r.Context(), SessionKey, sess))
}

// Authenticate guards API routes. Requests without a valid session cookie
// get 401 {"error":"Unauthorized"}; otherwise the session is attached to
// the request context.
func Authenticate(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := verify(v, r)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, withSession(r, sess))
		})
	}
}

// RequirePage guards dashboard pages with the same check as Authenticate,
// redirecting to the login page instead of answering 401. The login page
// itself is always let through.
func RequirePage(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == LoginPath {
				next.ServeHTTP(w, r)
				return
			}
			sess, ok := verify(v, r)
			if !ok {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, withSession(r, sess))
		})
	}
}

// RequireSuperadmin answers 403 {"error":"Forbidden"} unless the session
// attached by Authenticate belongs to a superadmin.
func RequireSuperadmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := GetSession(r.Context())
		if sess == nil || !sess.IsSuperadmin() {
			writeAuthError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSession returns the session attached by Authenticate or RequirePage,
// or nil.
func GetSession(ctx context.Context) *service.Session {
	if s, ok := ctx.Value(SessionKey).(*service.Session); ok {
		return s
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Built by hand to avoid an import cycle with the handler package.
	w.Write([]byte(`{"error":"` + message + `"}`))
}
