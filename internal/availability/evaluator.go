// Package availability decides whether the business is open for a given
// date and time. Every function is pure over a ScheduleConfig snapshot:
// no storage, no clock, no side effects. "Not available" is a normal
// false/empty result, never an error.
package availability

import (
	"time"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// DayHours is the effective open/close window for one date.
// Open is inclusive, Close exclusive: an appointment starting exactly at
// closing time has no room left for its duration.
type DayHours struct {
	Open  types.TimeString
	Close types.TimeString
}

// DateString renders the business-local calendar date as "YYYY-MM-DD".
// The date component is taken as-is; day boundaries never shift with
// time zone conversion.
func DateString(date time.Time) string {
	return date.Format(domain.DateFormat)
}

// IsDayOpen reports whether the business is open at all on the given date.
// A "closed"-type exception for the date wins over the weekly template.
// A missing template entry for the weekday counts as closed (fail safe).
func IsDayOpen(cfg *domain.ScheduleConfig, date time.Time) bool {
	if exc, ok := cfg.ExceptionFor(DateString(date)); ok && exc.Type == domain.ExceptionClosed {
		return false
	}

	entry, ok := cfg.TemplateFor(date.Weekday())
	if !ok {
		return false
	}
	return entry.IsOpen
}

// HoursOn returns the open/close window for the date. ok is false when
// the day is closed (exception, template flag, or missing entry).
// Exceptions other than "closed" do not alter hours yet; "custom" is a
// reserved extension point for partial-day overrides.
func HoursOn(cfg *domain.ScheduleConfig, date time.Time) (DayHours, bool) {
	if !IsDayOpen(cfg, date) {
		return DayHours{}, false
	}

	entry, ok := cfg.TemplateFor(date.Weekday())
	if !ok {
		return DayHours{}, false
	}
	return DayHours{Open: entry.OpenTime, Close: entry.CloseTime}, true
}

// IsTimeWithinHours reports whether t falls inside the date's business
// hours: open <= t < close, comparing zero-padded "HH:MM" strings.
func IsTimeWithinHours(cfg *domain.ScheduleConfig, date time.Time, t types.TimeString) bool {
	hours, ok := HoursOn(cfg, date)
	if !ok {
		return false
	}
	return !t.IsBefore(hours.Open) && t.IsBefore(hours.Close)
}

// OpenSlots filters candidate times down to those inside the date's
// business hours. Stateless and restartable; an empty result simply
// means the day offers no slots.
func OpenSlots(cfg *domain.ScheduleConfig, date time.Time, candidates []types.TimeString) []types.TimeString {
	open := make([]types.TimeString, 0, len(candidates))
	for _, t := range candidates {
		if IsTimeWithinHours(cfg, date, t) {
			open = append(open, t)
		}
	}
	return open
}

// DefaultSlotMenu is the hourly slot menu the booking UI offers,
// 09:00 through 18:00.
func DefaultSlotMenu() []types.TimeString {
	return []types.TimeString{
		"09:00", "10:00", "11:00", "12:00", "13:00",
		"14:00", "15:00", "16:00", "17:00", "18:00",
	}
}
