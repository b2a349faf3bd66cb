package shared

import "errors"

var (
	// ErrNotFound indicates the resource does not exist for the caller's cafe.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidation indicates malformed client input.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate indicates a uniqueness constraint was violated.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrLocked indicates another generation run holds the per-cafe lock.
	ErrLocked = errors.New("generation already in progress")
	// ErrProvider indicates the AI provider was unreachable or returned non-2xx.
	ErrProvider = errors.New("ai provider failure")
	// ErrBadReply indicates the AI provider was reachable but its reply was unusable.
	ErrBadReply = errors.New("ai reply unusable")
)
