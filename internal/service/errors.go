package service

import "errors"

// Sentinel errors forming the failure taxonomy handlers map to HTTP codes.
// Anything not wrapping one of these is an internal store-layer failure.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)
