// Package sessioncookie centralizes the browser session cookie. The cookie
// has no expiry so it lives as long as the browser session.
package sessioncookie

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/louisbranch/earlypay/internal/services/web/platform/requestmeta"
)

// Name is the canonical browser session cookie name.
const Name = "earlypay_session"

// Read returns the session id when the cookie carries a well-formed one.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if _, err := uuid.Parse(value); err != nil {
		return "", false
	}
	return value, true
}

// Ensure returns the current session id, issuing a new one when the request
// carries none.
func Ensure(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) string {
	if sessionID, ok := Read(r); ok {
		return sessionID
	}
	sessionID := uuid.NewString()
	Write(w, r, sessionID, policy)
	return sessionID
}

// Write sets the session cookie.
func Write(w http.ResponseWriter, r *http.Request, sessionID string, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(sessionID),
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
