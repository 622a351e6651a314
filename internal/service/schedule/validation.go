package schedule

import (
	"fmt"
	"time"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	"github.com/salabelleza/SPA-BookingService/internal/service/schedule/models"
	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// validateRequest checks the structural shape of a settings update before
// anything is written. Semantic rules live here, not in the repository.
func validateRequest(req *models.UpdateScheduleRequest) error {
	if req.IsEmpty() {
		return fmt.Errorf("%w: request changes nothing", ErrValidation)
	}

	if req.WeeklyTemplate != nil {
		if err := validateWeeklyTemplate(*req.WeeklyTemplate); err != nil {
			return err
		}
	}

	if req.Exceptions != nil {
		if err := validateExceptions(*req.Exceptions); err != nil {
			return err
		}
	}

	if req.MaxDailyBookings != nil {
		if *req.MaxDailyBookings < domain.MinDailyBookings || *req.MaxDailyBookings > domain.MaxDailyBookingsLimit {
			return fmt.Errorf("%w: maxDailyBookings must be between %d and %d",
				ErrValidation, domain.MinDailyBookings, domain.MaxDailyBookingsLimit)
		}
	}

	if req.MaxGuestsPerBooking != nil {
		if *req.MaxGuestsPerBooking < domain.MinGuestsPerBooking || *req.MaxGuestsPerBooking > domain.MaxGuestsLimit {
			return fmt.Errorf("%w: maxGuestsPerBooking must be between %d and %d",
				ErrValidation, domain.MinGuestsPerBooking, domain.MaxGuestsLimit)
		}
	}

	return nil
}

// validateWeeklyTemplate requires exactly one entry per weekday 0-6 with
// well-formed hours and openTime < closeTime on open days.
func validateWeeklyTemplate(entries []models.DayTemplateDTO) error {
	if len(entries) != domain.WeekdayCount {
		return fmt.Errorf("%w: weeklyTemplate must have exactly %d entries, got %d",
			ErrValidation, domain.WeekdayCount, len(entries))
	}

	seen := make(map[int]bool, domain.WeekdayCount)
	for _, entry := range entries {
		if entry.Day < 0 || entry.Day > 6 {
			return fmt.Errorf("%w: day must be between 0 and 6, got %d", ErrValidation, entry.Day)
		}
		if seen[entry.Day] {
			return fmt.Errorf("%w: duplicate entry for day %d", ErrValidation, entry.Day)
		}
		seen[entry.Day] = true

		openTime, err := types.NewTimeStringFromString(entry.OpenTime)
		if err != nil {
			return fmt.Errorf("%w: day %d openTime: %v", ErrValidation, entry.Day, err)
		}
		closeTime, err := types.NewTimeStringFromString(entry.CloseTime)
		if err != nil {
			return fmt.Errorf("%w: day %d closeTime: %v", ErrValidation, entry.Day, err)
		}

		if entry.IsOpen && !openTime.IsBefore(closeTime) {
			return fmt.Errorf("%w: day %d openTime %s must be before closeTime %s",
				ErrValidation, entry.Day, openTime, closeTime)
		}
	}

	return nil
}

// validateExceptions requires well-formed unique dates and a known type
func validateExceptions(entries []models.ExceptionDTO) error {
	seen := make(map[string]bool, len(entries))
	for _, exc := range entries {
		if _, err := time.Parse(domain.DateFormat, exc.Date); err != nil {
			return fmt.Errorf("%w: exception date %q is not YYYY-MM-DD", ErrValidation, exc.Date)
		}
		if seen[exc.Date] {
			return fmt.Errorf("%w: duplicate exception for date %s", ErrValidation, exc.Date)
		}
		seen[exc.Date] = true

		switch domain.ExceptionType(exc.Type) {
		case domain.ExceptionClosed, domain.ExceptionCustom:
			// known types
		default:
			return fmt.Errorf("%w: exception type %q must be %q or %q",
				ErrValidation, exc.Type, domain.ExceptionClosed, domain.ExceptionCustom)
		}
	}

	return nil
}
