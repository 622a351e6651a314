package get_available_slots

import (
	"context"
	"time"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
)

// BookingRepository supplies the day's active bookings
type BookingRepository interface {
	GetByDate(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository loads the availability configuration
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
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
