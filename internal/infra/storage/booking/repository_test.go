package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	"github.com/salabelleza/SPA-BookingService/pkg/ptr"
)

var testDate = time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "service_id", "booking_date", "start_time",
		"customer_name", "customer_phone", "guest_count", "status",
		"notes", "cancellation_reason", "cancelled_at", "created_at", "updated_at",
	})
}

func addBookingRow(rows *sqlmock.Rows, id int64, status string, startTime string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, int64(42), int64(7), testDate, startTime,
		"Lucía Fernández", "+54 11 5555-0100", 2, status,
		nil, nil, nil, now, now,
	)
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO bookings (user_id,service_id,booking_date,start_time,customer_name,customer_phone,guest_count,status,notes) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id, created_at, updated_at")).
		WithArgs(int64(42), int64(7), testDate, "10:00",
			"Lucía Fernández", "+54 11 5555-0100", 2, "pending", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(15), now, now))

	created, err := repo.Create(context.Background(), &domain.Booking{
		UserID:        42,
		ServiceID:     7,
		BookingDate:   testDate,
		StartTime:     "10:00",
		CustomerName:  "Lucía Fernández",
		CustomerPhone: "+54 11 5555-0100",
		GuestCount:    2,
		Status:        domain.StatusPending,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(15), created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE id = \\$1").
		WithArgs(int64(15)).
		WillReturnRows(addBookingRow(bookingRows(), 15, "confirmed", "10:00"))

	b, err := repo.GetByID(context.Background(), 15)
	require.NoError(t, err)

	assert.Equal(t, int64(15), b.ID)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, "10:00", b.StartTime.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE id = \\$1").
		WithArgs(int64(404)).
		WillReturnRows(bookingRows())

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByDate_ExcludesCancelledByDefault(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE booking_date = \\$1 AND status <> \\$2 ORDER BY start_time ASC").
		WithArgs(testDate, "cancelled").
		WillReturnRows(addBookingRow(addBookingRow(bookingRows(), 1, "pending", "09:00"), 2, "confirmed", "11:00"))

	out, err := repo.GetByDate(context.Background(), domain.DayBookingsFilter{Date: testDate})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByDate_StatusFilter(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE booking_date = \\$1 AND status = \\$2 ORDER BY start_time ASC").
		WithArgs(testDate, "cancelled").
		WillReturnRows(addBookingRow(bookingRows(), 3, "cancelled", "12:00"))

	status := domain.StatusCancelled
	out, err := repo.GetByDate(context.Background(), domain.DayBookingsFilter{Date: testDate, Status: &status})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.StatusCancelled, out[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByDate_NoLockOutsideTransaction(t *testing.T) {
	repo, mock := newMock(t)

	// LockForAdmission without a transaction in ctx must not add FOR UPDATE
	mock.ExpectQuery("SELECT .+ FROM bookings WHERE booking_date = \\$1 AND status <> \\$2 ORDER BY start_time ASC$").
		WithArgs(testDate, "cancelled").
		WillReturnRows(bookingRows())

	_, err := repo.GetByDate(context.Background(), domain.DayBookingsFilter{
		Date:             testDate,
		LockForAdmission: true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUpcomingByUserID(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE user_id = \\$1 AND status IN \\(\\$2,\\$3\\) AND booking_date >= \\$4 ORDER BY booking_date ASC, start_time ASC").
		WithArgs(int64(42), "pending", "confirmed", testDate).
		WillReturnRows(addBookingRow(bookingRows(), 1, "pending", "09:00"))

	out, err := repo.GetUpcomingByUserID(context.Background(), 42, testDate)
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE bookings SET status = $1, cancellation_reason = $2, cancelled_at = NOW(), updated_at = NOW() WHERE id = $3")).
		WithArgs("cancelled", "cambio de planes", int64(15)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), 15, ptr.Ptr("cambio de planes"))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE bookings SET .+ WHERE id = \\$3").
		WithArgs("cancelled", nil, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 404, nil)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs("confirmed", int64(15)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), 15, domain.StatusConfirmed)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSlot(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE bookings SET booking_date = $1, start_time = $2, updated_at = NOW() WHERE id = $3")).
		WithArgs(testDate, "14:00", int64(15)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateSlot(context.Background(), 15, testDate, "14:00")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByStatus(t *testing.T) {
	repo, mock := newMock(t)

	rows := addBookingRow(addBookingRow(bookingRows(), 3, "pending", "09:00"), 9, "pending", "10:00")

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE status = \$1 ORDER BY booking_date ASC, start_time ASC`).
		WithArgs("pending").
		WillReturnRows(rows)

	items, err := repo.GetByStatus(context.Background(), domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsActiveAt(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT 1 FROM bookings WHERE booking_date = \$1 AND start_time = \$2 AND status IN \(\$3,\$4\) LIMIT 1`).
		WithArgs(testDate, "10:00", "pending", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	taken, err := repo.ExistsActiveAt(context.Background(), testDate, "10:00")
	require.NoError(t, err)
	assert.True(t, taken)

	mock.ExpectQuery("SELECT 1 FROM bookings").
		WithArgs(testDate, "15:00", "pending", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	taken, err = repo.ExistsActiveAt(context.Background(), testDate, "15:00")
	require.NoError(t, err)
	assert.False(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
