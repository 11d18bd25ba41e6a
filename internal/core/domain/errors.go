package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRepository indicates a repository identifier is not of the form owner/name.
	ErrInvalidRepository = errors.New("invalid repository identifier")

	// ErrConflictingInput indicates an extract request named both, or neither,
	// an explicit repository list and a search query.
	ErrConflictingInput = errors.New("exactly one of repositories or query must be provided")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidOwnerMode indicates an unknown owner placement mode.
	ErrInvalidOwnerMode = errors.New("invalid owner mode")
)
