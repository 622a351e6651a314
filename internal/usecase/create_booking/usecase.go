package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salabelleza/SPA-BookingService/internal/availability"
	"github.com/salabelleza/SPA-BookingService/internal/domain"
	scheduleRepo "github.com/salabelleza/SPA-BookingService/internal/infra/storage/schedule"
)

// UseCase admits new bookings. All availability checks and the insert run
// in one serializable transaction, so two concurrent requests for the last
// remaining spot cannot both pass the capacity check.
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalog      ServiceCatalogClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the booking admission use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalog ServiceCatalogClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalog:      catalog,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the admission pipeline for one booking request
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, service=%d, date=%s, time=%s, guests=%d",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.GuestCount)

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Reject past dates
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	var result *domain.Booking

	// 3. Admission checks and the insert run atomically
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Load the availability configuration; fall back to
		// documented defaults when none has been persisted yet
		cfg, err := uc.scheduleRepo.Get(txCtx)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
				uc.logger.Error("CreateBooking: failed to get schedule config: %v", err)
				return fmt.Errorf("%w: failed to get schedule config: %v", ErrStorageUnavailable, err)
			}
			cfg = domain.DefaultScheduleConfig()
			uc.logger.Info("CreateBooking: no schedule config persisted, using defaults")
		}

		// 3.2. Guest limit comes from the configuration
		if req.GuestCount > cfg.MaxGuestsPerBooking {
			uc.logger.Warn("CreateBooking: guest count %d exceeds limit %d",
				req.GuestCount, cfg.MaxGuestsPerBooking)
			return fmt.Errorf("%w: at most %d guests per booking", ErrTooManyGuests, cfg.MaxGuestsPerBooking)
		}

		// 3.3. The date must be an open day. A closed-type exception
		// may name its reason; the rejection carries it through.
		if !availability.IsDayOpen(cfg, req.Date) {
			uc.logger.Warn("CreateBooking: business closed on %s", req.Date.Format(domain.DateFormat))
			return &DayClosedError{Reason: closureReason(cfg, req.Date)}
		}

		// 3.4. The start time must fall within the day's hours
		if !availability.IsTimeWithinHours(cfg, req.Date, req.StartTime) {
			hours, _ := availability.HoursOn(cfg, req.Date)
			uc.logger.Warn("CreateBooking: time %s outside business hours %s-%s on %s",
				req.StartTime, hours.Open, hours.Close, req.Date.Format(domain.DateFormat))
			return &OutsideHoursError{Open: hours.Open, Close: hours.Close}
		}

		// 3.5. Lock the day's bookings (FOR UPDATE) and count them.
		// Cancelled bookings do not occupy capacity.
		dayBookings, err := uc.bookingRepo.GetByDate(txCtx, domain.DayBookingsFilter{
			Date:             req.Date,
			LockForAdmission: true,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings for %s: %v",
				req.Date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrStorageUnavailable, err)
		}

		// 3.6. Exact-time conflict check, when enabled
		if cfg.PreventTimeConflicts {
			for _, b := range dayBookings {
				if b.StartTime == req.StartTime {
					uc.logger.Warn("CreateBooking: slot %s already taken on %s",
						req.StartTime, req.Date.Format(domain.DateFormat))
					return ErrSlotTaken
				}
			}
		}

		// 3.7. Daily capacity check
		if len(dayBookings) >= cfg.MaxDailyBookings {
			uc.logger.Warn("CreateBooking: capacity reached on %s, %d/%d",
				req.Date.Format(domain.DateFormat), len(dayBookings), cfg.MaxDailyBookings)
			return &CapacityError{Limit: cfg.MaxDailyBookings}
		}

		uc.logger.Info("CreateBooking: admitting, %d/%d bookings on %s",
			len(dayBookings), cfg.MaxDailyBookings, req.Date.Format(domain.DateFormat))

		// 3.8. Persist with the initial status
		booking := &domain.Booking{
			UserID:        req.UserID,
			ServiceID:     req.ServiceID,
			BookingDate:   req.Date,
			StartTime:     req.StartTime,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			GuestCount:    req.GuestCount,
			Status:        domain.StatusPending,
			Notes:         req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrStorageUnavailable, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if isRejection(err) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrStorageUnavailable, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 4. Resolve display data for the response. Best effort only: a
	// dangling serviceId or a catalog outage degrades to the placeholder
	// and never affects the admission above.
	service := uc.catalog.GetServiceForDisplay(ctx, req.ServiceID)

	return &Response{
		ID:            result.ID,
		UserID:        result.UserID,
		ServiceID:     result.ServiceID,
		BookingDate:   result.BookingDate,
		StartTime:     result.StartTime,
		Status:        string(result.Status),
		ServiceName:   service.Name,
		ServicePrice:  service.Price,
		CustomerName:  result.CustomerName,
		CustomerPhone: result.CustomerPhone,
		GuestCount:    result.GuestCount,
		Notes:         result.Notes,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
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
