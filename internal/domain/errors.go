package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Validation and not-found conditions are detected before
// any mutation begins; callers map them to 4xx responses. Everything else
// propagates as a server error.
var (
	// ErrNotFound marks a referenced Selection, Film or pivot row that
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks a client-caused input error. The whole batch
	// operation is rejected, no partial write.
	ErrValidation = errors.New("validation")

	// ErrInvalidTransition marks an illegal selection workflow step,
	// e.g. approving an already-approved selection.
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrValidation)
)

// Validationf builds a client-caused error carrying ErrValidation.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf builds a not-found error carrying ErrNotFound.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// IsValidation reports whether err is client-caused.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err is a not-found condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
