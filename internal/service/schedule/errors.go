package schedule

import "errors"

var (
	// ErrValidation is returned when a settings update is structurally
	// malformed (duplicate weekday, bad time or date string, non-positive
	// limit). The stored configuration stays untouched.
	ErrValidation = errors.New("invalid schedule configuration")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("schedule service: internal error")
)
