package service

import "errors"

var (
	// ErrUnauthorized is returned when the acting user lacks rights for the operation
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidState is returned when a precondition on current status or flags is not met
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidInput is returned for malformed arguments such as an out-of-range rating
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyFinalized is returned when an idempotency guard trips
	ErrAlreadyFinalized = errors.New("already finalized")

	// ErrInvalidTransition is returned when no edge exists in the transition table
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrDependencyFailure wraps unexpected failures of external collaborators
	ErrDependencyFailure = errors.New("dependency failure")
)

// isTaxonomyError reports whether err already carries one of the taxonomy
// sentinels, so callers can tell precondition failures from unexpected
// dependency failures.
func isTaxonomyError(err error) bool {
	for _, sentinel := range []error{
		ErrUnauthorized,
		ErrInvalidState,
		ErrInvalidInput,
		ErrAlreadyFinalized,
		ErrInvalidTransition,
		ErrDependencyFailure,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}
