package service

import "errors"

// Validation errors raised before any persistence side effect.
var (
	// ErrMissingUserRef is returned when a split carries no user id.
	// Ownerless splits are rejected rather than silently dropped.
	ErrMissingUserRef = errors.New("debitor user id is required")

	// ErrInvalidAmount is returned for non-positive payment amounts.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrNegativeAmount is returned when a split carries a negative assigned
	// or paid amount.
	ErrNegativeAmount = errors.New("split amounts must not be negative")

	// ErrAlreadySettled is returned when a payment is recorded against a
	// split that is already fully paid.
	ErrAlreadySettled = errors.New("split already settled")

	// ErrInvalidUsername is returned when a username fails the format rules.
	ErrInvalidUsername = errors.New("username must be at least 3 characters of letters, digits, dots or underscores")
)
