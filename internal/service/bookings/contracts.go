package bookings

import (
	"context"
	"time"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	"github.com/salabelleza/SPA-BookingService/internal/integrations/servicecatalog"
	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// BookingRepository is the persistence surface for booking lifecycle reads
// and writes. Admission-time writes go through the create and reschedule
// usecases instead.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetUpcomingByUserID(ctx context.Context, userID int64, today time.Time) ([]*domain.Booking, error)
	GetPastByUserID(ctx context.Context, userID int64, today time.Time) ([]*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByStatus(ctx context.Context, status domain.BookingStatus) ([]*domain.Booking, error)
	GetByDate(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error)
	ExistsActiveAt(ctx context.Context, date time.Time, startTime types.TimeString) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason *string) error
}

// ServiceCatalog resolves catalog display data for responses. Lookups are
// best effort and never fail a booking read.
type ServiceCatalog interface {
	GetServiceForDisplay(ctx context.Context, serviceID int64) *servicecatalog.Service
}

// TimeProvider supplies the current time, so tests can pin "today"
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider is the production TimeProvider
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time { return time.Now() }

// Logger is the logging surface this package needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
