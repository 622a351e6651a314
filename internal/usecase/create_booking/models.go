package create_booking

import (
	"time"

	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// Request carries the data needed to admit a new booking
type Request struct {
	UserID        int64            // authenticated user placing the booking
	ServiceID     int64            // catalog service being booked
	Date          time.Time        // booking date, date component only
	StartTime     types.TimeString // slot start, e.g. "10:00"
	CustomerName  string           // contact snapshot
	CustomerPhone string           // contact snapshot
	GuestCount    int              // party size, at least 1
	Notes         *string          // optional free-form notes
}

// Response is the booking as admitted
type Response struct {
	ID          int64
	UserID      int64
	ServiceID   int64
	BookingDate time.Time
	StartTime   types.TimeString
	Status      string

	// Catalog display data, resolved at admission time
	ServiceName  string
	ServicePrice float64

	CustomerName  string
	CustomerPhone string
	GuestCount    int
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
