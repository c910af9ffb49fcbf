package common

import "errors"

// Failure taxonomy. Every failure that reaches the user is caught where the
// network call was issued and wrapped with one of these.
var (
	// ErrAuthFailure means the login was rejected or could not be completed.
	ErrAuthFailure = errors.New("auth failure")

	// ErrFetchFailure means a page listing or single-record fetch failed.
	ErrFetchFailure = errors.New("fetch failure")

	// ErrDeleteFailure means a delete call failed or returned an unexpected status.
	ErrDeleteFailure = errors.New("delete failure")

	// ErrUpdateFailure means an edit could not be saved.
	ErrUpdateFailure = errors.New("update failure")
)

// ErrValidation marks input rejected before any network call.
var ErrValidation = errors.New("validation error")
