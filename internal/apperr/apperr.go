// Package apperr defines the error taxonomy shared by the service layer.
// Handlers match these sentinels with errors.Is and translate them to
// HTTP status codes; anything else is treated as an internal failure.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced entity does not exist or is deleted.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated means no acting user could be resolved.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrValidation means the request is malformed or violates a rule,
	// e.g. a self-addressed or duplicate friend request.
	ErrValidation = errors.New("validation failed")
	// ErrConflict means the target is in a terminal or incompatible state.
	ErrConflict = errors.New("conflict")
)

// NotFound wraps ErrNotFound with a description of the missing entity.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Validation wraps ErrValidation with the violated rule.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Conflict wraps ErrConflict with the conflicting state.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
