package vmath

import "errors"

// Arithmetic faults, carried as panic values by the non-checked operations
var (
	ErrOverflow     = errors.New("fixed-point overflow")
	ErrDivideByZero = errors.New("fixed-point division by zero")
	ErrNegativeSqrt = errors.New("square root of negative value")
	ErrZeroVector   = errors.New("normalize of zero-length vector")
)
