package get_user_bookings

import (
	"context"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	"github.com/salabelleza/SPA-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetUserBookings(ctx context.Context, userID int64, view string, status *domain.BookingStatus) ([]*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
