// Package common defines shared sentinel errors used across the
// bucketdrive client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Validation errors. Surfaced to the user immediately; the
	// operation is aborted before any state is mutated.
	ErrInvalidName   = errors.New("name contains reserved characters")
	ErrBlankTagKey   = errors.New("tag key is blank")
	ErrDuplicateName = errors.New("a file with this name already exists")

	// ErrStoreRequest marks a failed remote call. Recoverable by
	// retrying or by refreshing the listing from the remote source
	// of truth.
	ErrStoreRequest = errors.New("store request failed")

	// ErrTaskTerminal is returned when pause/resume is called on an
	// upload task that has already completed or failed.
	ErrTaskTerminal = errors.New("upload task is already finished")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")
)
