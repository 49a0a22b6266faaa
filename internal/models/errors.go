package models

import "errors"

var (
	// ErrNotFound is returned when an operation targets an id with no record.
	ErrNotFound = errors.New("job not found")

	// ErrValidation is returned when a write is missing a required field or
	// carries a value outside the allowed enums.
	ErrValidation = errors.New("validation failed")

	// ErrMalformedQuery is reserved for stricter list-parameter validation.
	// Today bad parameters degrade to defaults instead of returning it.
	ErrMalformedQuery = errors.New("malformed query")
)
