package repositories

import "errors"

// ErrNotFound is returned when a referenced record does not exist. All
// repository implementations wrap it so callers can test with errors.Is.
var ErrNotFound = errors.New("record not found")
