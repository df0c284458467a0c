package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the repository and service layers. Handlers map
// them to HTTP status codes in the api package.
var (
	ErrNotFound = errors.New("not found")
	ErrNoChange = errors.New("no change")
	ErrConflict = errors.New("already exists")
	ErrInternal = errors.New("internal failure")
)

// ReferenceError reports a foreign key that does not resolve to an existing
// record. It unwraps to ErrNotFound so callers that do not care which
// reference was missing can treat it like any other miss.
type ReferenceError struct {
	Kind string // "seller", "buyer", "plan", "workout"
	ID   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *ReferenceError) Unwrap() error { return ErrNotFound }
