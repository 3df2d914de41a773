package model

import "errors"

var (
	// ErrInvalidDimension is returned when a package or cargo bay has a
	// zero or negative dimension.
	ErrInvalidDimension = errors.New("dimensions must be positive")
	// ErrInvalidWeight is returned when a package weight or vehicle weight
	// limit is negative.
	ErrInvalidWeight = errors.New("weight must be non-negative")
)
