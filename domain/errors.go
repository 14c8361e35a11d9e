package domain

import "errors"

var (
	// ErrMissingID indicates a required user or post id was zero.
	// The call was not attempted.
	ErrMissingID = errors.New("missing id")

	// ErrNotFound indicates no mounted element matched the given post id.
	ErrNotFound = errors.New("not found")

	// ErrPostsNotProvided indicates a build or refresh was asked to render a nil post list.
	ErrPostsNotProvided = errors.New("posts not provided")

	// ErrStaleCycle indicates a refresh result arrived after a newer refresh started.
	ErrStaleCycle = errors.New("stale refresh cycle")
)
