package services

import "errors"

var (
	// ErrUnauthenticated means a reaction was attempted with no viewer
	// identity at hand. Surfaced to the user, never swallowed.
	ErrUnauthenticated = errors.New("you must be connected to react to posts")

	// ErrAlreadyReacted rejects a second like from the same viewer.
	ErrAlreadyReacted = errors.New("already reacted to this post")
)
