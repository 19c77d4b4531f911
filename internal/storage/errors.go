package storage

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	// ErrInvalidReference is returned when a mutation points at a missing
	// related row (foreign key violation).
	ErrInvalidReference = errors.New("invalid reference")
)
