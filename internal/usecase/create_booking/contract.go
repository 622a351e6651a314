package create_booking

import (
	"context"
	"time"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	"github.com/salabelleza/SPA-BookingService/internal/integrations/servicecatalog"
)

// BookingRepository is the persistence surface the admission path needs
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByDate(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository loads the availability configuration
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
}

// ServiceCatalogClient resolves display data for the booked service.
// Best effort: the client degrades to a placeholder on any failure, so
// admission never waits on or fails with the catalog.
type ServiceCatalogClient interface {
	GetServiceForDisplay(ctx context.Context, serviceID int64) *servicecatalog.Service
}

// TransactionManager runs the admission check and the insert atomically
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (pinned in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface this package needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production TimeProvider
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
