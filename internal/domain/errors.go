package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common business logic failures.
var (
	ErrAccountExists = errors.New("account with this email already exists")
	ErrNotFound      = errors.New("requested resource not found")
	ErrEmptyPassword = errors.New("password must not be empty")
)
