package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophchat/internal/common"
)

// bearerTransport attaches the current credential to every outgoing request.
// The token is read per request, so a login or logout takes effect on the
// next call without rebuilding the client.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func newBearerTransport(base http.RoundTripper, tokens TokenSource) *bearerTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &bearerTransport{base: base, tokens: tokens}
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())

	r.Header.Del(common.AuthorizationHeader)
	if t.tokens != nil {
		if token := t.tokens.Token(); token != "" {
			r.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
		}
	}

	if r.Header.Get(common.RequestIDHeader) == "" {
		r.Header.Set(common.RequestIDHeader, uuid.NewString())
	}

	return t.base.RoundTrip(r)
}
