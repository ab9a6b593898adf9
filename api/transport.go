package api

import (
	"net/http"

	"lawconnect/session"
)

// authTransport attaches the session's bearer token to every outgoing
// request. It is the client-side half of the backend's Bearer auth scheme.
type authTransport struct {
	base http.RoundTripper
	sess *session.Session
}

func newAuthTransport(sess *session.Session) *authTransport {
	return &authTransport{base: http.DefaultTransport, sess: sess}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.sess.Token(); token != "" {
		// Clone before mutating; RoundTrippers must not modify the original.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}
