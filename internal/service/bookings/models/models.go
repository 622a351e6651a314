package models

import (
	"time"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
)

// BookingResponse is a booking as served to clients. ServiceName and
// ServicePrice are denormalized from the catalog at read time and fall
// back to a placeholder when the service was deleted.
type BookingResponse struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"userId"`
	ServiceID int64 `json:"serviceId"`

	ServiceName  string  `json:"serviceName,omitempty"`
	ServicePrice float64 `json:"servicePrice,omitempty"`

	BookingDate string `json:"bookingDate"` // "YYYY-MM-DD"
	StartTime   string `json:"startTime"`   // "HH:MM"

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`

	GuestCount int     `json:"guestCount"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainBooking converts a domain booking to its DTO. Catalog display
// fields are filled in by the caller.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		ServiceID:          b.ServiceID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		GuestCount:         b.GuestCount,
		Status:             string(b.Status),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookings converts a slice, preserving order
func FromDomainBookings(items []*domain.Booking) []*BookingResponse {
	out := make([]*BookingResponse, len(items))
	for i, b := range items {
		out[i] = FromDomainBooking(b)
	}
	return out
}
