package http

import "net/http"

// Session cookie contract. The same attributes are used on issue and on
// clear; only the value and Max-Age differ.
const (
	sessionCookieName = "session"

	// sessionCookieMaxAge matches the session lifetime (7 days) in seconds.
	sessionCookieMaxAge = 7 * 24 * 60 * 60
)

// CookieWriter is the single capability the transport exposes for setting
// cookies. Handlers build the cookie once and hand it over; they never
// branch on the shape of the underlying response object.
type CookieWriter interface {
	SetCookie(cookie *http.Cookie)
}

// responseCookieWriter adapts http.ResponseWriter to CookieWriter.
type responseCookieWriter struct {
	w http.ResponseWriter
}

func (rw responseCookieWriter) SetCookie(cookie *http.Cookie) {
	http.SetCookie(rw.w, cookie)
}

// writeSessionCookie issues the session cookie carrying token.
func writeSessionCookie(cw CookieWriter, token string) {
	cw.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie expires the session cookie immediately. It is sent on
// every logout whether or not a session row existed.
func clearSessionCookie(cw CookieWriter) {
	cw.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
