package reschedule_booking

import (
	"errors"
	"fmt"

	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrForbidden is returned when a customer moves a booking that is
	// not theirs
	ErrForbidden = errors.New("reschedule_booking: access denied")

	// ErrNotReschedulable is returned when the booking already reached a
	// terminal status
	ErrNotReschedulable = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrInvalidDate is returned when the target date is in the past
	ErrInvalidDate = errors.New("reschedule_booking: invalid booking date")

	// ErrDayClosed is returned when the business is closed on the target
	// date
	ErrDayClosed = errors.New("reschedule_booking: business is closed on this date")

	// ErrOutsideBusinessHours is returned when the target time falls
	// outside the open interval of an open day
	ErrOutsideBusinessHours = errors.New("reschedule_booking: time is outside business hours")

	// ErrDailyCapacityExceeded is returned when the target date already
	// holds the maximum number of other bookings
	ErrDailyCapacityExceeded = errors.New("reschedule_booking: daily capacity exceeded")

	// ErrSlotTaken is returned when another active booking holds the
	// target start time and time conflicts are prevented
	ErrSlotTaken = errors.New("reschedule_booking: time slot already taken")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrStorageUnavailable is returned when the booking or schedule
	// store fails. Not retried here; the caller decides on backoff.
	ErrStorageUnavailable = errors.New("reschedule_booking: storage unavailable")
)

// DayClosedError carries the exception's reason text when the closure was
// declared with one. Unwraps to ErrDayClosed.
type DayClosedError struct {
	Reason string
}

func (e *DayClosedError) Error() string {
	if e.Reason == "" {
		return ErrDayClosed.Error()
	}
	return fmt.Sprintf("%s: %s", ErrDayClosed, e.Reason)
}

func (e *DayClosedError) Unwrap() error { return ErrDayClosed }

// OutsideHoursError carries the target day's open/close bounds. Unwraps
// to ErrOutsideBusinessHours.
type OutsideHoursError struct {
	Open  types.TimeString
	Close types.TimeString
}

func (e *OutsideHoursError) Error() string {
	return fmt.Sprintf("%s: open %s-%s", ErrOutsideBusinessHours, e.Open, e.Close)
}

func (e *OutsideHoursError) Unwrap() error { return ErrOutsideBusinessHours }

// CapacityError carries the violated daily limit. Unwraps to
// ErrDailyCapacityExceeded.
type CapacityError struct {
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: limit %d per day", ErrDailyCapacityExceeded, e.Limit)
}

func (e *CapacityError) Unwrap() error { return ErrDailyCapacityExceeded }

// rejectionErrors are the admission outcomes a caller is expected to
// branch on. Anything else coming out of the transaction is a storage
// fault.
var rejectionErrors = []error{
	ErrBookingNotFound,
	ErrForbidden,
	ErrNotReschedulable,
	ErrInvalidDate,
	ErrDayClosed,
	ErrOutsideBusinessHours,
	ErrDailyCapacityExceeded,
	ErrSlotTaken,
	ErrInvalidInput,
	ErrStorageUnavailable,
}

func isRejection(err error) bool {
	for _, sentinel := range rejectionErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
