package reschedule_booking

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salabelleza/SPA-BookingService/internal/api/handlers"
	"github.com/salabelleza/SPA-BookingService/internal/api/middleware"
	rescheduleBooking "github.com/salabelleza/SPA-BookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "ID de reserva inválido"
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidDateOrTime  = "formato de fecha u hora inválido, se espera YYYY-MM-DD y HH:MM"
	msgNotFound           = "reserva no encontrada"
	msgForbidden          = "acceso denegado"
	msgNotReschedulable   = "la reserva ya no puede reprogramarse"
	msgInvalidDate        = "la nueva fecha no puede estar en el pasado"
	msgDayClosed          = "el negocio está cerrado en la fecha seleccionada"
	msgOutsideHours       = "la hora seleccionada está fuera del horario de atención"
	msgCapacityExceeded   = "no hay cupos disponibles para esta fecha"
	msgSlotTaken          = "el horario seleccionado ya está reservado"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	requesterID := middleware.UserID(r.Context())
	isStaff := middleware.IsStaff(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(bookingID, requesterID, isStaff)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrForbidden):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Access denied: booking_id=%d, user_id=%d",
				bookingID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrNotReschedulable):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Not reschedulable: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgNotReschedulable)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid input: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Date in the past: booking_id=%d, date=%s",
				bookingID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, rescheduleBooking.ErrDayClosed):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Day closed: booking_id=%d, date=%s",
				bookingID, req.BookingDate)
			msg := msgDayClosed
			var dayClosed *rescheduleBooking.DayClosedError
			if errors.As(err, &dayClosed) && dayClosed.Reason != "" {
				msg = fmt.Sprintf("%s (%s)", msgDayClosed, dayClosed.Reason)
			}
			handlers.RespondUnprocessable(w, msg)

		case errors.Is(err, rescheduleBooking.ErrOutsideBusinessHours):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Outside business hours: booking_id=%d, time=%s",
				bookingID, req.StartTime)
			msg := msgOutsideHours
			var outside *rescheduleBooking.OutsideHoursError
			if errors.As(err, &outside) {
				msg = fmt.Sprintf("%s (horario: %s a %s)", msgOutsideHours, outside.Open, outside.Close)
			}
			handlers.RespondUnprocessable(w, msg)

		case errors.Is(err, rescheduleBooking.ErrDailyCapacityExceeded):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Capacity exceeded: booking_id=%d, date=%s",
				bookingID, req.BookingDate)
			msg := msgCapacityExceeded
			var capacity *rescheduleBooking.CapacityError
			if errors.As(err, &capacity) {
				msg = fmt.Sprintf("%s (máximo %d por día)", msgCapacityExceeded, capacity.Limit)
			}
			handlers.RespondConflict(w, msg)

		case errors.Is(err, rescheduleBooking.ErrSlotTaken):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot taken: booking_id=%d, date=%s, time=%s",
				bookingID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, rescheduleBooking.ErrStorageUnavailable):
			h.logger.Error("PATCH /bookings/{id}/reschedule - Storage unavailable: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed to reschedule: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking rescheduled successfully: booking_id=%d, date=%s, time=%s",
		bookingID, req.BookingDate, req.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
