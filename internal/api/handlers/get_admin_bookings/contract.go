package get_admin_bookings

import (
	"context"
	"time"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	"github.com/salabelleza/SPA-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetDayBookings(ctx context.Context, date time.Time, status *domain.BookingStatus) ([]*models.BookingResponse, error)
	GetByStatus(ctx context.Context, status domain.BookingStatus) ([]*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
