// Package errs defines the error taxonomy shared by the domain packages:
// not-found, conflict and invalid-input. Anything else is treated as a
// storage or transport failure by the HTTP layer.
package errs

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	ErrInvalid  = errors.New("invalid input")
)
