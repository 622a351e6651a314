package schedule

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func configRow(t *testing.T, cfg *domain.ScheduleConfig) *sqlmock.Rows {
	t.Helper()
	template, err := json.Marshal(cfg.WeeklyTemplate)
	require.NoError(t, err)
	exceptions, err := json.Marshal(cfg.Exceptions)
	require.NoError(t, err)

	now := time.Now()
	return sqlmock.NewRows([]string{
		"weekly_template", "exceptions", "max_daily_bookings",
		"max_guests_per_booking", "prevent_time_conflicts", "created_at", "updated_at",
	}).AddRow(template, exceptions, cfg.MaxDailyBookings, cfg.MaxGuestsPerBooking,
		cfg.PreventTimeConflicts, now, now)
}

func TestGet(t *testing.T) {
	repo, mock := newMock(t)

	stored := domain.DefaultScheduleConfig()
	stored.Exceptions = []domain.ScheduleException{
		{Date: "2026-12-25", Type: domain.ExceptionClosed},
	}

	mock.ExpectQuery("SELECT .+ FROM schedule_config WHERE key = \\$1").
		WithArgs(domain.ScheduleConfigKey).
		WillReturnRows(configRow(t, stored))

	cfg, err := repo.Get(context.Background())
	require.NoError(t, err)

	assert.Len(t, cfg.WeeklyTemplate, 7)
	assert.Equal(t, domain.DefaultMaxDailyBookings, cfg.MaxDailyBookings)
	require.Len(t, cfg.Exceptions, 1)
	assert.Equal(t, "2026-12-25", cfg.Exceptions[0].Date)

	// JSONB round trip keeps the weekly hours intact
	entry, ok := cfg.TemplateFor(time.Monday)
	require.True(t, ok)
	assert.Equal(t, "09:00", entry.OpenTime.String())
	assert.Equal(t, "18:00", entry.CloseTime.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT .+ FROM schedule_config WHERE key = \\$1").
		WithArgs(domain.ScheduleConfigKey).
		WillReturnRows(sqlmock.NewRows([]string{
			"weekly_template", "exceptions", "max_daily_bookings",
			"max_guests_per_booking", "prevent_time_conflicts", "created_at", "updated_at",
		}))

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrConfigNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDefault(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO schedule_config .+ ON CONFLICT \\(key\\) DO NOTHING").
		WithArgs(domain.ScheduleConfigKey, sqlmock.AnyArg(), sqlmock.AnyArg(),
			domain.DefaultMaxDailyBookings, domain.DefaultMaxGuestsPerBooking, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateDefault(context.Background())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDefault_ExistingRowIsNoOp(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO schedule_config .+ ON CONFLICT \\(key\\) DO NOTHING").
		WithArgs(domain.ScheduleConfigKey, sqlmock.AnyArg(), sqlmock.AnyArg(),
			domain.DefaultMaxDailyBookings, domain.DefaultMaxGuestsPerBooking, false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.CreateDefault(context.Background())
	assert.NoError(t, err, "losing the insert race is not an error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	repo, mock := newMock(t)

	cfg := domain.DefaultScheduleConfig()
	cfg.MaxDailyBookings = 35
	cfg.Exceptions = nil // nil exceptions persist as an empty array

	created := time.Now().Add(-24 * time.Hour)
	updated := time.Now()

	mock.ExpectQuery("UPDATE schedule_config SET .+ WHERE key = \\$6 RETURNING created_at, updated_at").
		WithArgs(sqlmock.AnyArg(), []byte("[]"), 35, domain.DefaultMaxGuestsPerBooking,
			false, domain.ScheduleConfigKey).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, updated))

	out, err := repo.Update(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 35, out.MaxDailyBookings)
	assert.Equal(t, updated.Unix(), out.UpdatedAt.Unix())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_MissingRow(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("UPDATE schedule_config SET .+ RETURNING created_at, updated_at").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	_, err := repo.Update(context.Background(), domain.DefaultScheduleConfig())
	assert.ErrorIs(t, err, ErrConfigNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
