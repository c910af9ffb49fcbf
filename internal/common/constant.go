// Package common contains shared constants and sentinel errors used across
// userdir components.
package common

// Header names attached to every request sent to the directory service.
const (
	// AuthorizationHeaderName carries the session token as "Bearer <token>".
	AuthorizationHeaderName = "Authorization"

	// APIKeyHeaderName carries the static API key required by the demo backend.
	APIKeyHeaderName = "x-api-key"

	// RequestIDHeaderName carries a per-request uuid used to correlate logs.
	RequestIDHeaderName = "X-Request-ID"
)

// DefaultBaseURL is the public demo directory service.
const DefaultBaseURL = "https://reqres.in/api"

// DefaultAPIKey is the free-tier key published by the demo backend.
const DefaultAPIKey = "reqres-free-v1"
