package ws

import (
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"domain_expiry/internal/clientid"
	"domain_expiry/internal/theme"
)

// RequireClientID rejects Socket.IO requests that carry no client id.
// The id comes from the page cookie or the cid query parameter.
func RequireClientID(next http.Handler, logger *logrus.Entry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := clientid.FromRequest(r); !ok {
			logger.WithField("remote", r.RemoteAddr).Warn("Handshake rejected: no client id")
			http.Error(w, "Bad Request: missing client id", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handshake is the part of a connection describing its opening request
type handshake interface {
	URL() url.URL
	RemoteHeader() http.Header
}

// clientIDOf returns the client id of a connection, or a fresh one
// so a tab without cookies still gets a working session
func clientIDOf(c handshake) (string, bool) {
	u := c.URL()
	r := &http.Request{Header: c.RemoteHeader(), URL: &u}
	if id, ok := clientid.FromRequest(r); ok {
		return id, true
	}
	return clientid.New(), false
}

// systemDarkOf reads the OS color scheme announced on the handshake
func systemDarkOf(c handshake) bool {
	u := c.URL()
	if v := u.Query().Get(SchemeParam); v != "" {
		return theme.SchemeIsDark(v)
	}
	return theme.SchemeIsDark(c.RemoteHeader().Get(SchemeHintHeader))
}
