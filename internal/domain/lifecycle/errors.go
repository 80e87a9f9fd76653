package lifecycle

import "errors"

var (
	// ErrInvalidStatus is returned when a status is not a valid lifecycle status
	ErrInvalidStatus = errors.New("invalid status")
)
