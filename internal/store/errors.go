package store

import "errors"

var (
	// ErrNotFound is returned when no project has the requested id.
	ErrNotFound = errors.New("project not found")
	// ErrSchemaMismatch means the database was created by a different schema version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
)
