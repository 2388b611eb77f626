// Package api is the client's HTTP adapter to the chat backend.
//
// # Overview
//
//  1. Client is the transport-agnostic contract the services depend on:
//     Login, Register, ListConversations, CreateConversation, SendMessage.
//  2. HTTPClient implements it over REST/JSON with one configured
//     *http.Client whose RoundTripper attaches "Authorization: Bearer <token>"
//     whenever the TokenSource has a credential, plus an X-Request-ID header.
//  3. Payloads are normalised at this edge (wire.go): "_id" or "id", string or
//     numeric ids, a bare array or an object wrapping the list. The rest of
//     the application only sees models.Conversation and models.User.
//
// # Error Handling
//
// Failures are returned as errors matching, via errors.Is, one of
// ErrUnavailable (transport or gateway failure), ErrUnauthorized (401/403),
// ErrBadRequest (400/409/422) or ErrUnexpectedResponse (body of the wrong
// shape). Any non-2xx answer is also a *StatusError carrying the status code
// and the backend's message. Nothing is retried.
package api
