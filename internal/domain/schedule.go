package domain

import (
	"time"

	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// ExceptionType classifies a date-specific override of the weekly template
type ExceptionType string

const (
	// ExceptionClosed closes the business for the whole date, overriding
	// the weekly template entirely.
	ExceptionClosed ExceptionType = "closed"

	// ExceptionCustom is modeled for partial-day overrides but not yet
	// interpreted: the evaluator treats it as not affecting hours.
	ExceptionCustom ExceptionType = "custom"
)

// DayTemplate is one weekday entry of the weekly template.
// Day uses 0=Sunday .. 6=Saturday.
type DayTemplate struct {
	Day       int              `json:"day"`
	IsOpen    bool             `json:"isOpen"`
	OpenTime  types.TimeString `json:"openTime"`
	CloseTime types.TimeString `json:"closeTime"`
}

// ScheduleException overrides the weekly template for a single date
type ScheduleException struct {
	Date   string        `json:"date"` // "YYYY-MM-DD"
	Type   ExceptionType `json:"type"`
	Reason *string       `json:"reason,omitempty"`
}

// ScheduleConfig is the business availability configuration. It is a
// singleton record: one weekly template, date-keyed exceptions and the
// capacity limits applied at booking admission.
type ScheduleConfig struct {
	WeeklyTemplate      []DayTemplate
	Exceptions          []ScheduleException
	MaxDailyBookings    int
	MaxGuestsPerBooking int

	// PreventTimeConflicts additionally rejects a booking when an active
	// booking already exists at the exact same date and time. Off by
	// default: two bookings may share a time as long as the daily cap holds.
	PreventTimeConflicts bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TemplateFor returns the weekly template entry for the given weekday.
// ok is false when the template has no entry for that day (malformed
// configuration), which callers treat as closed.
func (c *ScheduleConfig) TemplateFor(weekday time.Weekday) (DayTemplate, bool) {
	for _, entry := range c.WeeklyTemplate {
		if entry.Day == int(weekday) {
			return entry, true
		}
	}
	return DayTemplate{}, false
}

// ExceptionFor returns the exception recorded for the date string, if any
func (c *ScheduleConfig) ExceptionFor(date string) (ScheduleException, bool) {
	for _, exc := range c.Exceptions {
		if exc.Date == date {
			return exc, true
		}
	}
	return ScheduleException{}, false
}

// DefaultScheduleConfig returns the configuration used whenever none has
// been persisted yet: Sunday closed, Monday-Friday 09:00-18:00, Saturday
// 10:00-16:00, 20 bookings per day, 5 guests per booking.
func DefaultScheduleConfig() *ScheduleConfig {
	return &ScheduleConfig{
		WeeklyTemplate: []DayTemplate{
			{Day: 0, IsOpen: false, OpenTime: "09:00", CloseTime: "18:00"},
			{Day: 1, IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
			{Day: 2, IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
			{Day: 3, IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
			{Day: 4, IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
			{Day: 5, IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
			{Day: 6, IsOpen: true, OpenTime: "10:00", CloseTime: "16:00"},
		},
		Exceptions:           []ScheduleException{},
		MaxDailyBookings:     DefaultMaxDailyBookings,
		MaxGuestsPerBooking:  DefaultMaxGuestsPerBooking,
		PreventTimeConflicts: false,
	}
}
