package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrPhaseLocked rejects an operation that is only legal in another game
	// phase. The state is left untouched.
	ErrPhaseLocked = errors.New("operation locked in current phase")
)
