package types

import "errors"

// Entity errors.
var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNotFound         = errors.New("vampire not found")
	ErrInvalidName      = errors.New("invalid name")
)
