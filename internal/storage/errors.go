package storage

import "errors"

// Sentinel errors returned by Store implementations. Services and handlers
// match on these with errors.Is; implementations wrap them with the
// offending identifier.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrDebitorNotFound = errors.New("debitor not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrUsernameTaken   = errors.New("username taken")
)
