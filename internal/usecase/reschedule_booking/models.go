package reschedule_booking

import (
	"time"

	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// Request carries the data needed to move a booking to a new slot
type Request struct {
	BookingID   int64            // booking being moved
	RequesterID int64            // authenticated user making the request
	IsStaff     bool             // staff can move any booking
	Date        time.Time        // target date, date component only
	StartTime   types.TimeString // target slot start
}

// Response is the booking after the move
type Response struct {
	ID          int64
	UserID      int64
	ServiceID   int64
	BookingDate time.Time
	StartTime   types.TimeString
	Status      string
	UpdatedAt   time.Time
}
