package domain

// Default configuration values
const (
	DefaultMaxDailyBookings    = 20
	DefaultMaxGuestsPerBooking = 5
)

// Business validation constants
const (
	MinDailyBookings      = 1
	MaxDailyBookingsLimit = 500
	MinGuestsPerBooking   = 1
	MaxGuestsLimit        = 50
	MaxNotesLength        = 500
	MaxCustomerNameLength = 120
	MaxReasonLength       = 500
	WeekdayCount          = 7
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ScheduleConfigKey identifies the singleton availability record
const ScheduleConfigKey = "business_availability"

// ActiveStatuses are the statuses that occupy a slot and count toward
// per-time-slot conflicts
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// ValidStatuses enumerates every accepted booking status
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}
