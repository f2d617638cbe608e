package repository

import "errors"

var (
	// ErrDuplicateEmail is returned when an insert hits the unique
	// constraint on accounts.email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrAccountNotFound is returned when no account matches a lookup.
	ErrAccountNotFound = errors.New("account not found")
)
