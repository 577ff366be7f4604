package airports

import "errors"

var (
	// ErrConflict indicates a create targeted an id already in the registry.
	ErrConflict = errors.New("airport already exists")
	// ErrNotFound indicates the requested id is not in the registry.
	ErrNotFound = errors.New("airport not found")
)
