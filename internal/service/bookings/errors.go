package bookings

import "errors"

var (
	// ErrNotFound is returned when the booking does not exist
	ErrNotFound = errors.New("bookings service: booking not found")

	// ErrForbidden is returned when a customer touches a booking that is
	// not theirs
	ErrForbidden = errors.New("bookings service: access denied")

	// ErrValidation is returned on malformed input
	ErrValidation = errors.New("bookings service: invalid input")

	// ErrCannotCancel is returned when the booking already reached
	// completed and can no longer be cancelled
	ErrCannotCancel = errors.New("bookings service: booking cannot be cancelled")

	// ErrInvalidTransition is returned on a staff status change the
	// workflow does not allow
	ErrInvalidTransition = errors.New("bookings service: invalid status transition")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("bookings service: internal error")
)
