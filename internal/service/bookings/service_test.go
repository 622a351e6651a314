package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	bookingRepo "github.com/salabelleza/SPA-BookingService/internal/infra/storage/booking"
	"github.com/salabelleza/SPA-BookingService/internal/integrations/servicecatalog"
	"github.com/salabelleza/SPA-BookingService/pkg/ptr"
	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// Fakes

type fakeRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeRepo(items ...*domain.Booking) *fakeRepo {
	repo := &fakeRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range items {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) GetUpcomingByUserID(_ context.Context, userID int64, today time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && b.IsActive() && !b.BookingDate.Before(today) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetPastByUserID(_ context.Context, userID int64, today time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && b.BookingDate.Before(today) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) GetByStatus(_ context.Context, status domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ExistsActiveAt(_ context.Context, date time.Time, startTime types.TimeString) (bool, error) {
	for _, b := range f.bookings {
		if b.BookingDate.Equal(date) && b.StartTime == startTime && b.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) GetByDate(_ context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if !b.BookingDate.Equal(filter.Date) {
			continue
		}
		if !filter.IncludeCancelled && b.Status == domain.StatusCancelled {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, reason *string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = reason
	b.CancelledAt = &now
	b.UpdatedAt = now
	return nil
}

type fakeCatalog struct {
	calls int
}

func (f *fakeCatalog) GetServiceForDisplay(_ context.Context, serviceID int64) *servicecatalog.Service {
	f.calls++
	return &servicecatalog.Service{ID: serviceID, Name: "Limpieza facial", Price: 30.0}
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Helpers

var (
	today     = time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	yesterday = today.AddDate(0, 0, -1)
	tomorrow  = today.AddDate(0, 0, 1)
)

func booking(id, userID int64, date time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		UserID:      userID,
		ServiceID:   5,
		BookingDate: date,
		StartTime:   "11:00",
		Status:      status,
	}
}

func newTestService(repo *fakeRepo, catalog ServiceCatalog) *Service {
	return NewService(repo, catalog, fixedTime{now: today.Add(9 * time.Hour)}, nopLogger{})
}

// Tests

func TestGetByID_AccessControl(t *testing.T) {
	repo := newFakeRepo(booking(1, 42, tomorrow, domain.StatusPending))
	svc := newTestService(repo, nil)

	_, err := svc.GetByID(context.Background(), 1, 42, false)
	assert.NoError(t, err, "owner can read")

	_, err = svc.GetByID(context.Background(), 1, 99, false)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetByID(context.Background(), 1, 99, true)
	assert.NoError(t, err, "staff can read any booking")

	_, err = svc.GetByID(context.Background(), 404, 42, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByID_CatalogEnrichment(t *testing.T) {
	repo := newFakeRepo(booking(1, 42, tomorrow, domain.StatusPending))
	catalog := &fakeCatalog{}
	svc := newTestService(repo, catalog)

	resp, err := svc.GetByID(context.Background(), 1, 42, false)
	require.NoError(t, err)
	assert.Equal(t, "Limpieza facial", resp.ServiceName)
	assert.Equal(t, 30.0, resp.ServicePrice)
}

func TestGetUserBookings_Views(t *testing.T) {
	repo := newFakeRepo(
		booking(1, 42, tomorrow, domain.StatusPending),
		booking(2, 42, yesterday, domain.StatusCompleted),
		booking(3, 42, tomorrow, domain.StatusCancelled),
		booking(4, 99, tomorrow, domain.StatusConfirmed),
	)
	svc := newTestService(repo, nil)

	upcoming, err := svc.GetUserBookings(context.Background(), 42, ViewUpcoming, nil)
	require.NoError(t, err)
	require.Len(t, upcoming, 1, "cancelled and past bookings excluded from upcoming")
	assert.Equal(t, int64(1), upcoming[0].ID)

	past, err := svc.GetUserBookings(context.Background(), 42, ViewPast, nil)
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, int64(2), past[0].ID)

	all, err := svc.GetUserBookings(context.Background(), 42, "", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.GetUserBookings(context.Background(), 42, "someday", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	repo := newFakeRepo(
		booking(1, 42, tomorrow, domain.StatusPending),
		booking(2, 42, tomorrow, domain.StatusConfirmed),
	)
	svc := newTestService(repo, nil)

	confirmed := domain.StatusConfirmed
	out, err := svc.GetUserBookings(context.Background(), 42, ViewUpcoming, &confirmed)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)

	bad := domain.BookingStatus("archived")
	_, err = svc.GetUserBookings(context.Background(), 42, ViewUpcoming, &bad)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetDayBookings_IncludesCancelled(t *testing.T) {
	repo := newFakeRepo(
		booking(1, 42, tomorrow, domain.StatusPending),
		booking(2, 99, tomorrow, domain.StatusCancelled),
	)
	svc := newTestService(repo, nil)

	out, err := svc.GetDayBookings(context.Background(), tomorrow, nil)
	require.NoError(t, err)
	assert.Len(t, out, 2, "staff overview shows cancelled bookings")
}

func TestCancel_Idempotent(t *testing.T) {
	repo := newFakeRepo(booking(1, 42, tomorrow, domain.StatusConfirmed))
	svc := newTestService(repo, nil)

	reason := ptr.Ptr("cambio de planes")
	first, err := svc.Cancel(context.Background(), 1, 42, false, reason)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), first.Status)
	require.NotNil(t, first.CancellationReason)
	assert.Equal(t, "cambio de planes", *first.CancellationReason)
	assert.NotNil(t, first.CancelledAt)

	// A retried cancel succeeds without changing anything
	second, err := svc.Cancel(context.Background(), 1, 42, false, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), second.Status)
	assert.Equal(t, first.CancelledAt.Unix(), second.CancelledAt.Unix())
}

func TestCancel_CompletedRejected(t *testing.T) {
	repo := newFakeRepo(booking(1, 42, yesterday, domain.StatusCompleted))
	svc := newTestService(repo, nil)

	_, err := svc.Cancel(context.Background(), 1, 42, false, nil)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_AccessControl(t *testing.T) {
	repo := newFakeRepo(booking(1, 42, tomorrow, domain.StatusPending))
	svc := newTestService(repo, nil)

	_, err := svc.Cancel(context.Background(), 1, 99, false, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Cancel(context.Background(), 1, 99, true, nil)
	assert.NoError(t, err, "staff can cancel any booking")
}

func TestUpdateStatus_TransitionTable(t *testing.T) {
	tests := []struct {
		from    domain.BookingStatus
		to      domain.BookingStatus
		allowed bool
	}{
		{domain.StatusPending, domain.StatusConfirmed, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusPending, domain.StatusCompleted, false},
		{domain.StatusConfirmed, domain.StatusCompleted, true},
		{domain.StatusConfirmed, domain.StatusCancelled, true},
		{domain.StatusConfirmed, domain.StatusPending, false},
		{domain.StatusCancelled, domain.StatusConfirmed, false},
		{domain.StatusCompleted, domain.StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			repo := newFakeRepo(booking(1, 42, tomorrow, tt.from))
			svc := newTestService(repo, nil)

			resp, err := svc.UpdateStatus(context.Background(), 1, tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, string(tt.to), resp.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestUpdateStatus_SameStatusNoOp(t *testing.T) {
	repo := newFakeRepo(booking(1, 42, tomorrow, domain.StatusConfirmed))
	svc := newTestService(repo, nil)

	resp, err := svc.UpdateStatus(context.Background(), 1, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := newFakeRepo(booking(1, 42, tomorrow, domain.StatusPending))
	svc := newTestService(repo, nil)

	_, err := svc.UpdateStatus(context.Background(), 1, "archived")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetByStatus(t *testing.T) {
	repo := newFakeRepo(
		booking(1, 42, tomorrow, domain.StatusPending),
		booking(2, 43, tomorrow, domain.StatusConfirmed),
		booking(3, 44, yesterday, domain.StatusPending),
	)
	svc := newTestService(repo, nil)

	result, err := svc.GetByStatus(context.Background(), domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, result, 2)
	for _, b := range result {
		assert.Equal(t, "pending", b.Status)
	}

	_, err = svc.GetByStatus(context.Background(), domain.BookingStatus("archived"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIsSlotTaken(t *testing.T) {
	cancelled := booking(2, 43, tomorrow, domain.StatusCancelled)
	cancelled.StartTime = "14:00"
	repo := newFakeRepo(booking(1, 42, tomorrow, domain.StatusConfirmed), cancelled)
	svc := newTestService(repo, nil)

	taken, err := svc.IsSlotTaken(context.Background(), tomorrow, "11:00")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = svc.IsSlotTaken(context.Background(), tomorrow, "12:00")
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = svc.IsSlotTaken(context.Background(), tomorrow, "14:00")
	require.NoError(t, err)
	assert.False(t, taken, "cancelled bookings do not occupy the slot")
}
