// Package common contains constants and helpers shared by the client layers.
package common

const (
	// AuthorizationHeader carries the bearer credential on outgoing requests.
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"

	// RequestIDHeader correlates a client request with backend logs.
	RequestIDHeader = "X-Request-ID"
)

// Fixed keys under which the session is kept in local storage.
const (
	StorageKeyToken = "token"
	StorageKeyUser  = "user"
)
