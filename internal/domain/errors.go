package domain

import "errors"

// Sentinel errors for the domain layer. Repositories return these (possibly
// wrapped); handlers translate them to HTTP status codes.
var (
	// ErrUnauthorized means the caller has no valid session.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden means the caller is authenticated but does not own the
	// target entity (post, comment, friend request).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidOperation covers self-targeting actions such as friending or
	// messaging yourself.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrAlreadyFriends is returned when a friend request targets an existing
	// friendship.
	ErrAlreadyFriends = errors.New("already friends")

	// ErrRequestAlreadyExists is returned when a pending friend request
	// already exists between the pair, in either direction.
	ErrRequestAlreadyExists = errors.New("friend request already exists")

	// ErrInvalidState is returned when accepting or rejecting a friend
	// request that is no longer pending.
	ErrInvalidState = errors.New("request is not pending")
)
