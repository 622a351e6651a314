package domain

import (
	"time"

	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// BookingStatus represents the status of an appointment booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a spa appointment in the system
type Booking struct {
	ID        int64
	UserID    int64
	ServiceID int64

	// BookingDate carries the calendar date only (business-local wall clock,
	// never shifted across time zones). StartTime is the spa-local "HH:MM".
	BookingDate time.Time
	StartTime   types.TimeString

	// Contact snapshot taken at creation, independent of the user profile.
	CustomerName  string
	CustomerPhone string

	GuestCount int
	Status     BookingStatus
	Notes      *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsTerminal returns true if the booking reached a final state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking can be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo validates a staff-workflow status change.
// pending -> confirmed | cancelled; confirmed -> completed | cancelled.
// Re-applying the current status is a no-op and allowed.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.Status == next {
		return true
	}
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// DayBookingsFilter filters bookings for a single calendar date
type DayBookingsFilter struct {
	Date             time.Time      // required, date component only
	Status           *BookingStatus // optional exact-status filter
	IncludeCancelled bool           // include cancelled bookings
	LockForAdmission bool           // acquire FOR UPDATE row locks (inside a transaction)
}
