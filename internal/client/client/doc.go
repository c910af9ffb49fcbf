// Package client talks to the remote directory service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface): Login,
//     ListUsers, GetUser, UpdateUser and DeleteUser.
//  2. An HTTP/JSON implementation (see HTTPClient) that attaches the API key,
//     a per-request X-Request-ID, W3C trace context and the bearer token of
//     the injected session.Session to every call, and maps HTTP status codes
//     to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable (transport failure, timeout or 5xx),
// ErrUnauthorized (401/403, rejected login), ErrNotFound (404), ErrRejected
// (any other 4xx) and ErrUnexpectedStatus (anything else, including a 2xx
// other than 204 on delete). No call is ever retried automatically.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation and deadlines.
package client
