package middleware

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "admin_session"

// SessionMaxAge is how long browsers keep the session cookie.
const SessionMaxAge = 24 * time.Hour

// Cookies writes and clears the session cookie. Secure forces the Secure
// attribute for deployments behind a TLS-terminating proxy; it is always
// set for requests that arrived over TLS.
type Cookies struct {
	Secure bool
}

func (c Cookies) secure(r *http.Request) bool {
	return c.Secure || r.TLS != nil
}

// Set stores token in the session cookie.
func (c Cookies) Set(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionMaxAge / time.Second),
		HttpOnly: true,
		Secure:   c.secure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func (c Cookies) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.secure(r),
		SameSite: http.SameSiteLaxMode,
	})
}
