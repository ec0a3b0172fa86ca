package services

import "errors"

// Error kinds surfaced by the service layer. Handlers match them with
// errors.Is and map them onto HTTP status codes.
var (
	// ErrUnauthenticated means no subject was supplied where one is required.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the subject lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput means the request failed validation before any
	// persistence call was made.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstream means the persistence or messaging collaborator failed.
	// It is surfaced to the caller; the service layer never retries.
	ErrUpstream = errors.New("upstream failure")
)
