// Package session owns the authentication state of the client.
//
// A Store keeps the bearer credential and the user identity in memory and in
// local storage (keys "token" and "user"), restores them on start without
// contacting the backend, and pushes every transition to subscribers such as
// the route navigator and the chat screen. The HTTP adapter reads the
// credential through Store.Token on every request, so clearing the store
// immediately stops the credential from being sent.
//
// Screens that need the store obtain it with FromContext; calling it on a
// context that was never passed through NewContext is a programming error and
// panics.
package session
