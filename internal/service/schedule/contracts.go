package schedule

import (
	"context"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
)

// ScheduleRepository is the persistence surface for the settings singleton
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
	CreateDefault(ctx context.Context) error
	Update(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
}

// ScheduleCache is a best-effort short-TTL read cache
type ScheduleCache interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, bool)
	Set(ctx context.Context, cfg *domain.ScheduleConfig)
	Invalidate(ctx context.Context)
}

// Logger is the logging surface this package needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
