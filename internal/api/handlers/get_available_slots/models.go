package get_available_slots

import (
	"github.com/salabelleza/SPA-BookingService/internal/domain"
	getAvailableSlots "github.com/salabelleza/SPA-BookingService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date              string `json:"date"`
	IsOpen            bool   `json:"isOpen"`
	OpenTime          string `json:"openTime,omitempty"`
	CloseTime         string `json:"closeTime,omitempty"`
	RemainingCapacity int    `json:"remainingCapacity"`
	Slots             []Slot `json:"slots"`
}

// Slot HTTP model of one bookable start time
type Slot struct {
	StartTime string `json:"startTime"`
	Taken     bool   `json:"taken"`
}

// FromUseCaseResponse converts the use case response to the HTTP model
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	out := &SlotsResponse{
		Date:              resp.Date.Format(domain.DateFormat),
		IsOpen:            resp.IsOpen,
		RemainingCapacity: resp.RemainingCapacity,
		Slots:             make([]Slot, len(resp.Slots)),
	}

	if resp.IsOpen {
		out.OpenTime = resp.OpenTime.String()
		out.CloseTime = resp.CloseTime.String()
	}

	for i, slot := range resp.Slots {
		out.Slots[i] = Slot{
			StartTime: slot.StartTime.String(),
			Taken:     slot.Taken,
		}
	}

	return out
}
