package get_available_slots

import (
	"time"

	"github.com/salabelleza/SPA-BookingService/internal/availability"
	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// Slots start on the hour.
const slotStepMinutes = 60

// generateTimeSlots lists every slot start from opening to closing with a
// fixed step. The closing time itself is never a slot.
func generateTimeSlots(hours availability.DayHours) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)

	current := hours.Open
	for current.IsBefore(hours.Close) {
		slots = append(slots, current)

		next, err := current.AddMinutes(slotStepMinutes)
		if err != nil {
			// The day boundary ends the menu
			break
		}
		current = next
	}

	return slots, nil
}

// isDateInPast compares calendar dates, ignoring the time of day
func isDateInPast(date, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	target := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return target.Before(today)
}
