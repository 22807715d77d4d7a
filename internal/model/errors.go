package model

import "errors"

var (
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned by stores on unique-constraint violations.
	ErrConflict = errors.New("record already exists")

	// ErrStoreUnavailable marks an infrastructure fault (connection loss,
	// timeout). Callers treat it as fail-closed: deny, never admit.
	ErrStoreUnavailable = errors.New("store unavailable")
)
