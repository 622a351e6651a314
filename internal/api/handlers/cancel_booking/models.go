package cancel_booking

// CancelBookingRequest HTTP request model. The body is optional.
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}
