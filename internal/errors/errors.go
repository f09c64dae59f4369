package errors

import "errors"

// Sentinel errors shared by the service and API layers. Services wrap them
// with context; the API maps them to status codes with errors.Is.

var (
	// ErrNotFound: the chatroom, session or cached resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation: caller input was rejected (blank message, empty title).
	ErrValidation = errors.New("validation failed")

	// ErrConflict: the operation clashes with the current state, e.g. sending
	// while a response is still streaming.
	ErrConflict = errors.New("resource conflict")

	// ErrUnavailable: the model server could not be reached.
	ErrUnavailable = errors.New("model server unavailable")

	// ErrInternal hides implementation details from clients.
	ErrInternal = errors.New("internal server error")
)
