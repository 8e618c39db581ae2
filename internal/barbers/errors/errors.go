package errors

import "errors"

var (
	ErrNotFound = errors.New("barber not found")

	ErrInvalidID = errors.New("invalid barber ID format")
)
