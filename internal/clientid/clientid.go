// Package clientid identifies a browser across page loads with a UUID cookie.
package clientid

import (
	"net/http"

	"github.com/google/uuid"
)

// CookieName holds the client id
const CookieName = "expiry_client"

// maxAge keeps the cookie for ten years; preferences never expire
const maxAge = 10 * 365 * 24 * 60 * 60

// QueryParam carries the client id on the Socket.IO handshake
const QueryParam = "cid"

// New returns a fresh client id
func New() string {
	return uuid.NewString()
}

// Valid reports whether id is a well-formed UUID
func Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// FromRequest returns the client id from the cookie or the handshake query
func FromRequest(r *http.Request) (string, bool) {
	if c, err := r.Cookie(CookieName); err == nil && Valid(c.Value) {
		return c.Value, true
	}
	if r.URL != nil {
		if id := r.URL.Query().Get(QueryParam); Valid(id) {
			return id, true
		}
	}
	return "", false
}

// Cookie builds the long-lived client id cookie
func Cookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	}
}

// Ensure returns the request's client id, issuing a cookie when absent
func Ensure(w http.ResponseWriter, r *http.Request) string {
	if id, ok := FromRequest(r); ok {
		return id
	}
	id := New()
	http.SetCookie(w, Cookie(id))
	return id
}
