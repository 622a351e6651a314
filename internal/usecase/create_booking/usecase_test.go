package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	scheduleRepo "github.com/salabelleza/SPA-BookingService/internal/infra/storage/schedule"
	"github.com/salabelleza/SPA-BookingService/internal/integrations/servicecatalog"
	"github.com/salabelleza/SPA-BookingService/pkg/ptr"
	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// Fakes

type fakeBookingRepo struct {
	bookings []*domain.Booking
	created  *domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	created := *b
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeBookingRepo) GetByDate(_ context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.BookingDate.Equal(filter.Date) && b.Status != domain.StatusCancelled {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeScheduleRepo struct {
	cfg *domain.ScheduleConfig
}

func (f *fakeScheduleRepo) Get(context.Context) (*domain.ScheduleConfig, error) {
	if f.cfg == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return f.cfg, nil
}

type fakeCatalog struct{}

func (fakeCatalog) GetServiceForDisplay(_ context.Context, serviceID int64) *servicecatalog.Service {
	if serviceID == 404 {
		return &servicecatalog.Service{ID: serviceID, Name: servicecatalog.DeletedServicePlaceholder}
	}
	return &servicecatalog.Service{ID: serviceID, Name: "Masaje relajante", Price: 45.0}
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Helpers

var (
	monday   = time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)  // open 09:00-18:00
	sunday   = time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC)  // closed by template
	saturday = time.Date(2026, 6, 13, 0, 0, 0, 0, time.UTC) // open 10:00-16:00
)

func newTestUseCase(repo *fakeBookingRepo, sched *fakeScheduleRepo) *UseCase {
	uc := NewUseCase(repo, sched, fakeCatalog{}, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest(date time.Time, start string) *Request {
	return &Request{
		UserID:        42,
		ServiceID:     7,
		Date:          date,
		StartTime:     types.TimeString(start),
		CustomerName:  "Lucía Fernández",
		CustomerPhone: "+54 11 5555-0100",
		GuestCount:    2,
	}
}

func seedBookings(repo *fakeBookingRepo, date time.Time, count int, start string) {
	for i := 0; i < count; i++ {
		repo.nextID++
		repo.bookings = append(repo.bookings, &domain.Booking{
			ID:          repo.nextID,
			UserID:      int64(100 + i),
			ServiceID:   1,
			BookingDate: date,
			StartTime:   types.TimeString(start),
			Status:      domain.StatusConfirmed,
		})
	}
}

// Tests

func TestExecute_AdmitsBookingAsPending(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{})

	resp, err := uc.Execute(context.Background(), validRequest(monday, "10:00"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Masaje relajante", resp.ServiceName)
	assert.Equal(t, 45.0, resp.ServicePrice)
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusPending, repo.created.Status)
	assert.Equal(t, int64(42), repo.created.UserID)
}

func TestExecute_OpeningTimeAdmitted_ClosingTimeRejected(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{})

	_, err := uc.Execute(context.Background(), validRequest(monday, "09:00"))
	assert.NoError(t, err, "opening time is bookable")

	_, err = uc.Execute(context.Background(), validRequest(monday, "18:00"))
	assert.ErrorIs(t, err, ErrOutsideBusinessHours, "closing time is not bookable")
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{})

	_, err := uc.Execute(context.Background(), validRequest(sunday, "11:00"))
	assert.ErrorIs(t, err, ErrDayClosed)
}

func TestExecute_ExceptionClosesOpenDay(t *testing.T) {
	cfg := domain.DefaultScheduleConfig()
	cfg.Exceptions = []domain.ScheduleException{
		{Date: "2026-06-08", Type: domain.ExceptionClosed, Reason: ptr.Ptr("Feriado")},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{cfg: cfg})

	_, err := uc.Execute(context.Background(), validRequest(monday, "11:00"))
	assert.ErrorIs(t, err, ErrDayClosed)

	var dayClosed *DayClosedError
	require.ErrorAs(t, err, &dayClosed)
	assert.Equal(t, "Feriado", dayClosed.Reason, "the exception's reason travels with the rejection")
}

func TestExecute_SaturdayHours(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{})

	_, err := uc.Execute(context.Background(), validRequest(saturday, "09:00"))
	assert.ErrorIs(t, err, ErrOutsideBusinessHours, "saturday opens at 10:00")

	var outside *OutsideHoursError
	require.ErrorAs(t, err, &outside)
	assert.Equal(t, types.TimeString("10:00"), outside.Open)
	assert.Equal(t, types.TimeString("16:00"), outside.Close)

	_, err = uc.Execute(context.Background(), validRequest(saturday, "10:00"))
	assert.NoError(t, err)
}

func TestExecute_DailyCapacityExceeded(t *testing.T) {
	cfg := domain.DefaultScheduleConfig()
	cfg.MaxDailyBookings = 3

	repo := &fakeBookingRepo{}
	seedBookings(repo, monday, 3, "09:00")
	uc := newTestUseCase(repo, &fakeScheduleRepo{cfg: cfg})

	_, err := uc.Execute(context.Background(), validRequest(monday, "14:00"))
	assert.ErrorIs(t, err, ErrDailyCapacityExceeded)

	var capacity *CapacityError
	require.ErrorAs(t, err, &capacity)
	assert.Equal(t, 3, capacity.Limit)
}

func TestExecute_CancelledBookingsFreeCapacity(t *testing.T) {
	cfg := domain.DefaultScheduleConfig()
	cfg.MaxDailyBookings = 2

	repo := &fakeBookingRepo{}
	seedBookings(repo, monday, 2, "09:00")
	repo.bookings[0].Status = domain.StatusCancelled

	uc := newTestUseCase(repo, &fakeScheduleRepo{cfg: cfg})

	_, err := uc.Execute(context.Background(), validRequest(monday, "14:00"))
	assert.NoError(t, err)
}

func TestExecute_SlotConflictOnlyWhenConfigured(t *testing.T) {
	repo := &fakeBookingRepo{}
	seedBookings(repo, monday, 1, "10:00")
	uc := newTestUseCase(repo, &fakeScheduleRepo{})

	// Default config allows several bookings at the same time
	_, err := uc.Execute(context.Background(), validRequest(monday, "10:00"))
	assert.NoError(t, err)

	cfg := domain.DefaultScheduleConfig()
	cfg.PreventTimeConflicts = true
	uc = newTestUseCase(repo, &fakeScheduleRepo{cfg: cfg})

	_, err = uc.Execute(context.Background(), validRequest(monday, "10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_GuestLimitFromConfig(t *testing.T) {
	cfg := domain.DefaultScheduleConfig()
	cfg.MaxGuestsPerBooking = 3
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{cfg: cfg})

	req := validRequest(monday, "10:00")
	req.GuestCount = 4

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooManyGuests)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{})

	req := validRequest(time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC), "10:00")
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DanglingServiceStillAdmitted(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{})

	req := validRequest(monday, "10:00")
	req.ServiceID = 404

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err, "the catalog never gates admission")
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, servicecatalog.DeletedServicePlaceholder, resp.ServiceName)
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(404), repo.created.ServiceID)
}

func TestExecute_InputValidation(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing customer name", func(r *Request) { r.CustomerName = "  " }},
		{"missing phone", func(r *Request) { r.CustomerPhone = "" }},
		{"zero guests", func(r *Request) { r.GuestCount = 0 }},
		{"bad time format", func(r *Request) { r.StartTime = "25:99" }},
		{"missing user", func(r *Request) { r.UserID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(monday, "10:00")
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_DefaultsUsedWhenNoConfigPersisted(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{cfg: nil})

	// Sunday is closed and Monday open under the documented defaults
	_, err := uc.Execute(context.Background(), validRequest(sunday, "11:00"))
	assert.ErrorIs(t, err, ErrDayClosed)

	_, err = uc.Execute(context.Background(), validRequest(monday, "11:00"))
	assert.NoError(t, err)
}

type failingTxManager struct{}

func (failingTxManager) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return errors.New("pq: the database system is shutting down")
}

func TestExecute_StorageFaultSurfacesAsUnavailable(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, fakeCatalog{}, failingTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest(monday, "10:00"))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
