package userlist

import "errors"

var (
	// ErrPageOutOfRange is returned for a page below 1 or above the last
	// known page. No fetch is issued.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrSuperseded is returned by a fetch whose response arrived after a
	// newer fetch was started. Its result is discarded.
	ErrSuperseded = errors.New("superseded by a newer page request")

	ErrNoPendingDelete  = errors.New("no delete awaiting confirmation")
	ErrDeleteInProgress = errors.New("a delete is already in progress")

	// ErrUnknownUser means the id is not on the current page.
	ErrUnknownUser = errors.New("user is not on the current page")
)
