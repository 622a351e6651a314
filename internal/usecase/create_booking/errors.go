package create_booking

import (
	"errors"
	"fmt"

	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

var (
	// ErrInvalidDate is returned when the booking date is in the past
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDayClosed is returned when the business is closed on the
	// requested date, by weekly template or by exception
	ErrDayClosed = errors.New("create_booking: business is closed on this date")

	// ErrOutsideBusinessHours is returned when the start time falls
	// outside the open interval of an open day
	ErrOutsideBusinessHours = errors.New("create_booking: time is outside business hours")

	// ErrDailyCapacityExceeded is returned when the date already holds
	// the maximum number of bookings
	ErrDailyCapacityExceeded = errors.New("create_booking: daily capacity exceeded")

	// ErrSlotTaken is returned when another active booking holds the
	// exact start time and time conflicts are prevented
	ErrSlotTaken = errors.New("create_booking: time slot already taken")

	// ErrTooManyGuests is returned when the party exceeds the configured
	// per-booking guest limit
	ErrTooManyGuests = errors.New("create_booking: too many guests")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStorageUnavailable is returned when the booking or schedule
	// store fails. Not retried here; the caller decides on backoff.
	ErrStorageUnavailable = errors.New("create_booking: storage unavailable")
)

// DayClosedError carries the exception's reason text when the closure was
// declared with one ("Navidad"). Unwraps to ErrDayClosed.
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

// OutsideHoursError carries the day's open/close bounds so a rejection can
// tell the caller what the window actually is. Unwraps to
// ErrOutsideBusinessHours.
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
	ErrInvalidDate,
	ErrDayClosed,
	ErrOutsideBusinessHours,
	ErrDailyCapacityExceeded,
	ErrSlotTaken,
	ErrTooManyGuests,
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
