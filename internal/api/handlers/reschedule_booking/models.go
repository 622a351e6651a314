package reschedule_booking

import (
	"time"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	rescheduleBooking "github.com/salabelleza/SPA-BookingService/internal/usecase/reschedule_booking"
	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	BookingDate string `json:"bookingDate"` // "2026-03-15"
	StartTime   string `json:"startTime"`   // "10:00"
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	ServiceID   int64  `json:"serviceId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	Status      string `json:"status"`
	UpdatedAt   string `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request, parsing date and time
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, requesterID int64, isStaff bool) (*rescheduleBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID:   bookingID,
		RequesterID: requesterID,
		IsStaff:     isStaff,
		Date:        bookingDate,
		StartTime:   startTime,
	}, nil
}

// FromUseCaseResponse converts the use case response to the HTTP model
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		ServiceID:   resp.ServiceID,
		BookingDate: resp.BookingDate.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		Status:      resp.Status,
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
