package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	bookingRepo "github.com/salabelleza/SPA-BookingService/internal/infra/storage/booking"
	"github.com/salabelleza/SPA-BookingService/internal/service/bookings/models"
	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// User-list views
const (
	ViewUpcoming = "upcoming"
	ViewPast     = "past"
)

// Service owns the booking lifecycle after admission: reads, cancellation
// and the staff status workflow.
type Service struct {
	repo    BookingRepository
	catalog ServiceCatalog
	clock   TimeProvider
	logger  Logger
}

// NewService creates a booking lifecycle service. catalog may be nil when
// the catalog integration is disabled.
func NewService(repo BookingRepository, catalog ServiceCatalog, clock TimeProvider, logger Logger) *Service {
	if clock == nil {
		clock = RealTimeProvider{}
	}
	return &Service{
		repo:    repo,
		catalog: catalog,
		clock:   clock,
		logger:  logger,
	}
}

// GetByID returns one booking. Customers can only read their own bookings;
// staff can read any.
func (s *Service) GetByID(ctx context.Context, bookingID, requesterID int64, isStaff bool) (*models.BookingResponse, error) {
	b, err := s.load(ctx, "GetByID", bookingID)
	if err != nil {
		return nil, err
	}

	if !isStaff && b.UserID != requesterID {
		s.logger.Warn("GetByID: user %d denied access to booking %d", requesterID, bookingID)
		return nil, fmt.Errorf("%w: GetByID - booking %d", ErrForbidden, bookingID)
	}

	resp := models.FromDomainBooking(b)
	s.enrich(ctx, resp)
	return resp, nil
}

// GetUserBookings lists a user's bookings. view selects upcoming (active
// bookings from today onward, soonest first) or past (dates before today,
// most recent first); an empty view lists everything. status narrows any
// view further.
func (s *Service) GetUserBookings(ctx context.Context, userID int64, view string, status *domain.BookingStatus) ([]*models.BookingResponse, error) {
	if status != nil {
		if err := validateStatus(*status); err != nil {
			return nil, err
		}
	}

	today := dateOnly(s.clock.Now())

	var (
		items []*domain.Booking
		err   error
	)
	switch view {
	case ViewUpcoming:
		items, err = s.repo.GetUpcomingByUserID(ctx, userID, today)
	case ViewPast:
		items, err = s.repo.GetPastByUserID(ctx, userID, today)
	case "":
		items, err = s.repo.GetByUserID(ctx, userID, status)
		status = nil // already applied by the repository
	default:
		return nil, fmt.Errorf("%w: view %q must be %q or %q", ErrValidation, view, ViewUpcoming, ViewPast)
	}
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user %d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	if status != nil {
		filtered := items[:0]
		for _, b := range items {
			if b.Status == *status {
				filtered = append(filtered, b)
			}
		}
		items = filtered
	}

	out := models.FromDomainBookings(items)
	s.enrichAll(ctx, out)
	return out, nil
}

// GetDayBookings lists every booking on one calendar date for the staff
// overview, cancelled ones included unless a status filter says otherwise.
func (s *Service) GetDayBookings(ctx context.Context, date time.Time, status *domain.BookingStatus) ([]*models.BookingResponse, error) {
	if status != nil {
		if err := validateStatus(*status); err != nil {
			return nil, err
		}
	}

	items, err := s.repo.GetByDate(ctx, domain.DayBookingsFilter{
		Date:             dateOnly(date),
		Status:           status,
		IncludeCancelled: true,
	})
	if err != nil {
		s.logger.Error("GetDayBookings: repository error for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDayBookings - repository error: %v", ErrInternal, err)
	}

	out := models.FromDomainBookings(items)
	s.enrichAll(ctx, out)
	return out, nil
}

// GetByStatus lists every booking in one status across all dates, soonest
// first. Staff use it as a work queue for pending confirmations.
func (s *Service) GetByStatus(ctx context.Context, status domain.BookingStatus) ([]*models.BookingResponse, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	items, err := s.repo.GetByStatus(ctx, status)
	if err != nil {
		s.logger.Error("GetByStatus: repository error for %s: %v", status, err)
		return nil, fmt.Errorf("%w: GetByStatus - repository error: %v", ErrInternal, err)
	}

	out := models.FromDomainBookings(items)
	s.enrichAll(ctx, out)
	return out, nil
}

// IsSlotTaken reports whether an active booking already holds the exact
// date and time. Advisory slot marking for the UI; it never gates
// admission, which re-checks under its own transaction.
func (s *Service) IsSlotTaken(ctx context.Context, date time.Time, startTime types.TimeString) (bool, error) {
	taken, err := s.repo.ExistsActiveAt(ctx, dateOnly(date), startTime)
	if err != nil {
		s.logger.Error("IsSlotTaken: repository error for %s %s: %v",
			date.Format(domain.DateFormat), startTime, err)
		return false, fmt.Errorf("%w: IsSlotTaken - repository error: %v", ErrInternal, err)
	}
	return taken, nil
}

// Cancel marks a booking cancelled and releases its slot. Cancelling an
// already cancelled booking succeeds without changing anything, so retried
// requests are safe. Completed bookings cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, bookingID, requesterID int64, isStaff bool, reason *string) (*models.BookingResponse, error) {
	if reason != nil && utf8.RuneCountInString(*reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrValidation, domain.MaxReasonLength)
	}

	b, err := s.load(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	if !isStaff && b.UserID != requesterID {
		s.logger.Warn("Cancel: user %d denied access to booking %d", requesterID, bookingID)
		return nil, fmt.Errorf("%w: Cancel - booking %d", ErrForbidden, bookingID)
	}

	if b.IsCancelled() {
		s.logger.Info("Cancel: booking %d already cancelled, no-op", bookingID)
		resp := models.FromDomainBooking(b)
		s.enrich(ctx, resp)
		return resp, nil
	}

	if !b.CanBeCancelled() {
		return nil, fmt.Errorf("%w: Cancel - booking %d is %s", ErrCannotCancel, bookingID, b.Status)
	}

	if err := s.repo.Cancel(ctx, bookingID, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: Cancel - booking %d", ErrNotFound, bookingID)
		}
		s.logger.Error("Cancel: repository error for booking %d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking %d cancelled by user %d (staff=%v)", bookingID, requesterID, isStaff)

	b, err = s.load(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}
	resp := models.FromDomainBooking(b)
	s.enrich(ctx, resp)
	return resp, nil
}

// UpdateStatus applies a staff workflow transition. Re-applying the
// current status succeeds without a write.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, next domain.BookingStatus) (*models.BookingResponse, error) {
	if err := validateStatus(next); err != nil {
		return nil, err
	}

	b, err := s.load(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return nil, err
	}

	if b.Status == next {
		resp := models.FromDomainBooking(b)
		s.enrich(ctx, resp)
		return resp, nil
	}

	if !b.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: UpdateStatus - booking %d cannot go from %s to %s",
			ErrInvalidTransition, bookingID, b.Status, next)
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, next); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: UpdateStatus - booking %d", ErrNotFound, bookingID)
		}
		s.logger.Error("UpdateStatus: repository error for booking %d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking %d moved from %s to %s", bookingID, b.Status, next)

	b, err = s.load(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return nil, err
	}
	resp := models.FromDomainBooking(b)
	s.enrich(ctx, resp)
	return resp, nil
}

func (s *Service) load(ctx context.Context, method string, bookingID int64) (*domain.Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: %s - booking %d", ErrNotFound, method, bookingID)
		}
		s.logger.Error("%s: repository error for booking %d: %v", method, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return b, nil
}

func (s *Service) enrich(ctx context.Context, resp *models.BookingResponse) {
	if s.catalog == nil || resp == nil {
		return
	}
	svc := s.catalog.GetServiceForDisplay(ctx, resp.ServiceID)
	resp.ServiceName = svc.Name
	resp.ServicePrice = svc.Price
}

func (s *Service) enrichAll(ctx context.Context, items []*models.BookingResponse) {
	if s.catalog == nil {
		return
	}
	// One catalog lookup per distinct service on the page.
	cache := make(map[int64]struct {
		name  string
		price float64
	})
	for _, resp := range items {
		entry, ok := cache[resp.ServiceID]
		if !ok {
			svc := s.catalog.GetServiceForDisplay(ctx, resp.ServiceID)
			entry.name = svc.Name
			entry.price = svc.Price
			cache[resp.ServiceID] = entry
		}
		resp.ServiceName = entry.name
		resp.ServicePrice = entry.price
	}
}

func validateStatus(status domain.BookingStatus) error {
	for _, valid := range domain.ValidStatuses {
		if status == valid {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
