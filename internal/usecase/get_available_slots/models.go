package get_available_slots

import (
	"time"

	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// Request asks for the slot listing of one date
type Request struct {
	Date time.Time // date component only
}

// Response lists the date's slots. Slots is empty when the business is
// closed that day.
type Response struct {
	Date              time.Time
	IsOpen            bool
	OpenTime          types.TimeString // zero when closed
	CloseTime         types.TimeString // zero when closed
	RemainingCapacity int              // bookings still admissible that day
	Slots             []Slot
}

// Slot is one bookable start time
type Slot struct {
	StartTime types.TimeString
	Taken     bool // an active booking already holds this exact time
}
