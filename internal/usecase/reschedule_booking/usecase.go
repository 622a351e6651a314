package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salabelleza/SPA-BookingService/internal/availability"
	"github.com/salabelleza/SPA-BookingService/internal/domain"
	bookingRepo "github.com/salabelleza/SPA-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/salabelleza/SPA-BookingService/internal/infra/storage/schedule"
)

// UseCase moves a booking to a new slot. The target slot goes through the
// same admission checks as a new booking, with the booking itself excluded
// from the counts, and the original slot stays untouched when the target
// is rejected.
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the reschedule use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the reschedule pipeline for one booking
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, user=%d, date=%s, time=%s",
		req.BookingID, req.RequesterID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Reject past dates
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("RescheduleBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	var result *domain.Booking

	// 3. Admission checks and the slot update run atomically
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Load the booking and check access and status
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking %d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrStorageUnavailable, err)
		}

		if !req.IsStaff && booking.UserID != req.RequesterID {
			uc.logger.Warn("RescheduleBooking: user %d denied access to booking %d",
				req.RequesterID, req.BookingID)
			return ErrForbidden
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking %d is %s", req.BookingID, booking.Status)
			return fmt.Errorf("%w: booking is %s", ErrNotReschedulable, booking.Status)
		}

		// 3.2. Load the availability configuration
		cfg, err := uc.scheduleRepo.Get(txCtx)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
				uc.logger.Error("RescheduleBooking: failed to get schedule config: %v", err)
				return fmt.Errorf("%w: failed to get schedule config: %v", ErrStorageUnavailable, err)
			}
			cfg = domain.DefaultScheduleConfig()
		}

		// 3.3. The target date must be an open day. A closed-type
		// exception may name its reason; the rejection carries it.
		if !availability.IsDayOpen(cfg, req.Date) {
			uc.logger.Warn("RescheduleBooking: business closed on %s", req.Date.Format(domain.DateFormat))
			return &DayClosedError{Reason: closureReason(cfg, req.Date)}
		}

		// 3.4. The target time must fall within the day's hours
		if !availability.IsTimeWithinHours(cfg, req.Date, req.StartTime) {
			hours, _ := availability.HoursOn(cfg, req.Date)
			uc.logger.Warn("RescheduleBooking: time %s outside business hours %s-%s on %s",
				req.StartTime, hours.Open, hours.Close, req.Date.Format(domain.DateFormat))
			return &OutsideHoursError{Open: hours.Open, Close: hours.Close}
		}

		// 3.5. Lock the target day's bookings and count the others.
		// The booking being moved never competes with itself, which
		// keeps a same-day time change possible on a full day.
		dayBookings, err := uc.bookingRepo.GetByDate(txCtx, domain.DayBookingsFilter{
			Date:             req.Date,
			LockForAdmission: true,
		})
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings for %s: %v",
				req.Date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrStorageUnavailable, err)
		}

		others := 0
		for _, b := range dayBookings {
			if b.ID == booking.ID {
				continue
			}
			if cfg.PreventTimeConflicts && b.StartTime == req.StartTime {
				uc.logger.Warn("RescheduleBooking: slot %s already taken on %s",
					req.StartTime, req.Date.Format(domain.DateFormat))
				return ErrSlotTaken
			}
			others++
		}

		if others >= cfg.MaxDailyBookings {
			uc.logger.Warn("RescheduleBooking: capacity reached on %s, %d/%d",
				req.Date.Format(domain.DateFormat), others, cfg.MaxDailyBookings)
			return &CapacityError{Limit: cfg.MaxDailyBookings}
		}

		// 3.6. Move the booking
		if err := uc.bookingRepo.UpdateSlot(txCtx, booking.ID, req.Date, req.StartTime); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update slot for booking %d: %v",
				booking.ID, err)
			return fmt.Errorf("%w: failed to update slot: %v", ErrStorageUnavailable, err)
		}

		moved, err := uc.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to re-read booking %d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to re-read booking: %v", ErrStorageUnavailable, err)
		}

		result = moved
		return nil
	})

	if err != nil {
		if isRejection(err) {
			return nil, err
		}
		uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrStorageUnavailable, err)
	}

	uc.logger.Info("RescheduleBooking: booking %d moved to %s %s",
		result.ID, result.BookingDate.Format(domain.DateFormat), result.StartTime)

	return &Response{
		ID:          result.ID,
		UserID:      result.UserID,
		ServiceID:   result.ServiceID,
		BookingDate: result.BookingDate,
		StartTime:   result.StartTime,
		Status:      string(result.Status),
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// closureReason returns the reason text of a closed-type exception on the
// date, if one was declared
func closureReason(cfg *domain.ScheduleConfig, date time.Time) string {
	exc, ok := cfg.ExceptionFor(availability.DateString(date))
	if !ok || exc.Type != domain.ExceptionClosed || exc.Reason == nil {
		return ""
	}
	return *exc.Reason
}
