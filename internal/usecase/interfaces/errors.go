package interfaces

import "errors"

// Errors shared by every repository backend.
var (
	// ErrAlreadyExists is returned by Create when the id is taken.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrVersionConflict is returned by a versioned Update when the stored
	// record changed after the caller read it.
	ErrVersionConflict = errors.New("record changed since it was read")
)
