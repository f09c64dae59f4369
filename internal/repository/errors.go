package repository

import "errors"

// ErrNotFound is returned when a lookup (a settings key, the model cache)
// finds nothing. Services translate it into a domain-level error.
var ErrNotFound = errors.New("repository: not found")

// ErrIdentityMismatch means a conversation file decoded to a different id
// than the one the store was opened with.
var ErrIdentityMismatch = errors.New("repository: conversation id does not match its file")
