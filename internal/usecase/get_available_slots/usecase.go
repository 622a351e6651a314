package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/salabelleza/SPA-BookingService/internal/availability"
	"github.com/salabelleza/SPA-BookingService/internal/domain"
	scheduleRepo "github.com/salabelleza/SPA-BookingService/internal/infra/storage/schedule"
	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// UseCase lists the bookable slots of one date. The listing is advisory
// only; admission re-checks everything inside its own transaction.
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the slot listing use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute computes the slot listing for one date
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// Load the availability configuration, falling back to defaults
	cfg, err := uc.scheduleRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get schedule config: %v", err)
			return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}
		cfg = domain.DefaultScheduleConfig()
	}

	now := uc.timeProvider.Now()

	// Past dates and closed days list no slots
	hours, open := availability.HoursOn(cfg, req.Date)
	if isDateInPast(req.Date, now) || !open {
		return &Response{
			Date:   req.Date,
			IsOpen: false,
			Slots:  []Slot{},
		}, nil
	}

	slots, err := generateTimeSlots(hours)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// Mark slots held by active bookings
	dayBookings, err := uc.bookingRepo.GetByDate(ctx, domain.DayBookingsFilter{Date: req.Date})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for %s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	taken := make(map[types.TimeString]bool, len(dayBookings))
	for _, b := range dayBookings {
		taken[b.StartTime] = true
	}

	out := make([]Slot, len(slots))
	for i, slot := range slots {
		out[i] = Slot{
			StartTime: slot,
			Taken:     taken[slot],
		}
	}

	remaining := cfg.MaxDailyBookings - len(dayBookings)
	if remaining < 0 {
		remaining = 0
	}

	uc.logger.Info("GetAvailableSlots: date=%s, slots=%d, booked=%d, remaining=%d",
		req.Date.Format(domain.DateFormat), len(out), len(dayBookings), remaining)

	return &Response{
		Date:              req.Date,
		IsOpen:            true,
		OpenTime:          hours.Open,
		CloseTime:         hours.Close,
		RemainingCapacity: remaining,
		Slots:             out,
	}, nil
}
