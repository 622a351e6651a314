package update_booking_status

import (
	"context"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	"github.com/salabelleza/SPA-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	UpdateStatus(ctx context.Context, bookingID int64, next domain.BookingStatus) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
